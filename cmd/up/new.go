package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/history"
	"github.com/raphi011/up/internal/hooks"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/project"
	"github.com/raphi011/up/internal/templates"
	"github.com/raphi011/up/internal/ui/progress"
	"github.com/raphi011/up/internal/ui/styles"
)

// Step ids of the new-project flow.
const (
	stepName     = "name"
	stepTemplate = "template"
	stepPackage  = "package"
	stepPath     = "path"
)

type newOptions struct {
	name     string
	template string
	url      string
	pkg      string
	path     string
	verify   bool
	copy     bool
	hook     string
	noHook   bool
	args     []string
	dryRun   bool
}

// newAnswers are the resolved inputs of a new project.
type newAnswers struct {
	Name     string
	Template string
	Package  string
	Parent   string
	Extra    map[string]string // every answer, for hook placeholders
}

// buildNewFlow declares the new-project steps. Known values are
// pre-supplied; without a terminal, steps that have nothing to accept
// are left out so resolution can report what is missing.
func buildNewFlow(b *flow.Builder, cfg *config.Config, opts newOptions, interactive bool) (*flow.Flow, error) {
	mode := flow.Accept
	if opts.verify {
		mode = flow.Verify
	}

	b.WithText(stepName).
		Name("Project name").
		ResultValue(cmp.Or(strings.TrimSpace(opts.name), strings.TrimSpace(cfg.Defaults.ProjectName), config.DefaultProjectName)).
		ResultMode(mode).
		PostHook(func(s *flow.TextState) {
			s.Context.Put(stepName, strings.TrimSpace(s.ResultValue))
		}).
		And()

	if opts.url == "" {
		tmpl := cmp.Or(opts.template, cfg.Defaults.TemplateRepository)
		if interactive || tmpl != "" {
			b.WithSingleChoice(stepTemplate).
				Name("Template").
				SelectItems(templateItems(cfg.TemplateRepositories)).
				ResultValue(tmpl).
				ResultMode(mode).
				Max(10).
				And()
		}
	}

	pkg := cmp.Or(opts.pkg, cfg.Defaults.PackageName)
	if interactive || pkg != "" {
		b.WithText(stepPackage).
			Name("Go module path (empty keeps the template's)").
			ResultValue(pkg).
			ResultMode(mode).
			And()
	}

	parent := opts.path
	if !interactive {
		parent = cmp.Or(parent, ".")
	}
	b.WithPath(stepPath).
		Name("Parent directory").
		DefaultValue(".").
		ResultValue(parent).
		ResultMode(mode).
		And()

	return b.Build()
}

// templateItems lists configured repositories; those without a URL
// cannot be chosen.
func templateItems(repos []config.TemplateRepository) []flow.SelectItem {
	items := make([]flow.SelectItem, 0, len(repos))
	for _, r := range repos {
		item := flow.Item(r.Name, r.Name)
		item.Description = r.Description
		item.Enabled = strings.TrimSpace(r.URL) != ""
		items = append(items, item)
	}
	return items
}

func collectNewAnswers(c *flow.Context) newAnswers {
	extra := make(map[string]string)
	for _, id := range c.Keys() {
		extra[id] = strings.Join(c.GetStrings(id), ",")
	}
	return newAnswers{
		Name:     c.GetString(stepName),
		Template: c.GetString(stepTemplate),
		Package:  strings.TrimSpace(c.GetString(stepPackage)),
		Parent:   cmp.Or(strings.TrimSpace(c.GetString(stepPath)), "."),
		Extra:    extra,
	}
}

func runNew(ctx context.Context, term flow.Terminal, opts newOptions) error {
	cfg := configFrom(ctx)
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if opts.template != "" && opts.url != "" {
		return templates.ErrConflict
	}

	f, err := buildNewFlow(newFlowBuilder(term), cfg, opts, term != nil)
	if err != nil {
		return err
	}
	res, err := f.Run(ctx)
	if err != nil {
		return needsInput(err, "pass the value as a flag")
	}
	answers := collectNewAnswers(res.Context())

	if answers.Name == "" {
		return errors.New("project name must not be empty")
	}
	if answers.Package != "" {
		if err := project.ValidateModulePath(answers.Package); err != nil {
			return err
		}
	}
	src, err := templates.Resolve(cfg, answers.Template, opts.url)
	if err != nil {
		return err
	}

	parent, err := filepath.Abs(expandHome(answers.Parent))
	if err != nil {
		return err
	}
	target := filepath.Join(parent, project.DirName(answers.Name))
	if err := checkTarget(target); err != nil {
		return err
	}

	l.Debug("creating project", "name", answers.Name, "template", src.Label(), "url", src.URL, "target", target)

	retrieved, err := retrieveTemplate(ctx, cfg, src)
	if err != nil {
		return err
	}
	defer func() {
		if err := retrieved.Cleanup(); err != nil {
			l.Debug("cleanup failed", "dir", retrieved.Dir, "error", err)
		}
	}()

	if answers.Package != "" {
		rw, err := project.RewriteModule(retrieved.Dir, answers.Package)
		switch {
		case errors.Is(err, project.ErrNoModule):
			l.Printf("Warning: template has no go.mod, package %s not applied\n", answers.Package)
		case err != nil:
			return fmt.Errorf("rewrite module: %w", err)
		default:
			l.Debug("rewrote module", "from", rw.From, "to", rw.To, "files", rw.Files)
		}
	}

	if err := project.Copy(retrieved.Dir, target); err != nil {
		return fmt.Errorf("copy project: %w", err)
	}

	if err := runNewHooks(ctx, cfg, opts, answers, src, target); err != nil {
		return err
	}

	recordHistory(ctx, history.Entry{
		Name:     answers.Name,
		Path:     target,
		Template: src.Label(),
		URL:      src.URL,
		Package:  answers.Package,
		Commit:   retrieved.Commit,
	})

	l.Println(styles.SuccessStyle.Render(fmt.Sprintf("Project %s created in %s", answers.Name, target)))
	out.Println(target)

	if opts.copy {
		if err := clipboard.WriteAll(target); err != nil {
			l.Printf("Warning: could not copy to clipboard: %v\n", err)
		}
	}
	return nil
}

func retrieveTemplate(ctx context.Context, cfg *config.Config, src templates.Source) (*templates.Retrieved, error) {
	l := log.FromContext(ctx)
	if l.IsQuiet() || l.IsVerbose() {
		return templates.Retrieve(ctx, cfg, src)
	}
	sp := progress.NewSpinner(fmt.Sprintf("Retrieving template %s", src.Label()))
	sp.Start()
	defer sp.Stop()
	return templates.Retrieve(ctx, cfg, src)
}

func runNewHooks(ctx context.Context, cfg *config.Config, opts newOptions, answers newAnswers, src templates.Source, target string) error {
	matches, err := hooks.SelectHooks(cfg.Hooks, opts.hook, opts.noHook, hooks.CommandNew)
	if err != nil || len(matches) == 0 {
		return err
	}

	env, err := hooks.ParseArgs(opts.args, os.Stdin)
	if err != nil {
		return err
	}
	merged := maps.Clone(answers.Extra)
	maps.Copy(merged, env)

	return hooks.RunAll(ctx, matches, hooks.Vars{
		Path:     target,
		Name:     answers.Name,
		Package:  answers.Package,
		Template: src.Label(),
		Trigger:  string(hooks.CommandNew),
		Env:      merged,
		DryRun:   opts.dryRun,
	})
}

// recordHistory adds e to the project history. Failures only warn.
func recordHistory(ctx context.Context, e history.Entry) {
	l := log.FromContext(ctx)
	path, err := configFrom(ctx).HistoryPath()
	if err == nil {
		err = history.Record(path, e)
	}
	if err != nil {
		l.Printf("Warning: could not record history: %v\n", err)
	}
}

// checkTarget fails early when target exists and is not empty.
func checkTarget(target string) error {
	entries, err := os.ReadDir(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", project.ErrExists, target)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
