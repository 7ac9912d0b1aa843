package flow

import "maps"

// Context accumulates step answers keyed by step id.
//
// Text, path and single choice steps store a string; multi choice steps
// store a []string. Context is not safe for concurrent use.
type Context struct {
	values map[string]any
	keys   []string // first-write order
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Put stores value under id, replacing any previous value.
// An overwritten key keeps its original position in Keys.
func (c *Context) Put(id string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, ok := c.values[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.values[id] = value
}

// Get returns the value stored under id.
func (c *Context) Get(id string) (any, bool) {
	v, ok := c.values[id]
	return v, ok
}

// Has reports whether id has a value.
func (c *Context) Has(id string) bool {
	_, ok := c.values[id]
	return ok
}

// GetString returns the value under id as a string.
// Returns "" if the id is absent or not a string.
func (c *Context) GetString(id string) string {
	s, _ := c.values[id].(string)
	return s
}

// GetStrings returns the value under id as a string slice.
// A single string value is returned as a one-element slice.
func (c *Context) GetStrings(id string) []string {
	switch v := c.values[id].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Keys returns ids in the order they were first written.
func (c *Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of stored ids.
func (c *Context) Len() int {
	return len(c.values)
}

// Map returns a shallow copy of the stored values.
func (c *Context) Map() map[string]any {
	return maps.Clone(c.values)
}
