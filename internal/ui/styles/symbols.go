package styles

import "github.com/charmbracelet/x/ansi"

// Symbols holds the glyphs used by prompts.
type Symbols struct {
	Cursor     string
	Checked    string
	Unchecked  string
	Done       string
	MoreAbove  string
	MoreBelow  string
	Folder     string
	FolderMiss string
}

var defaultSymbols = Symbols{
	Cursor:     ">",
	Checked:    "[x]",
	Unchecked:  "[ ]",
	Done:       "✓",
	MoreAbove:  "↑",
	MoreBelow:  "↓",
	Folder:     "dir",
	FolderMiss: "new",
}

var nerdfontSymbols = Symbols{
	Cursor:     "", // nf-fa-chevron_right
	Checked:    "", // nf-fa-check_square
	Unchecked:  "", // nf-fa-square_o
	Done:       "", // nf-fa-check
	MoreAbove:  "", // nf-fa-chevron_up
	MoreBelow:  "", // nf-fa-chevron_down
	Folder:     "", // nf-fa-folder
	FolderMiss: "", // nf-fa-folder_o
}

var currentSymbols = defaultSymbols

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// Link wraps text in an OSC 8 hyperlink to url. Returns text unchanged
// when url is empty.
func Link(text, url string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
