package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/ui/styles"
)

// confirmer is implemented by terminals that can ask yes/no questions.
type confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage up configuration.

Config:      ~/.config/up/config.toml
Credentials: ~/.config/up/hosts.toml
Templates:   ~/.config/up/templates/*.tmpl (prompt header overrides)

UP_CONFIG_DIR moves all of them.`,
		Example: `  up config init                    # Create default config
  up config show                    # Show effective config
  up config path                    # Print config file path
  up config host set github.com     # Store credentials for a host`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigHostCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  up config init     # Create config, asks before overwriting
  up config init -f  # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.Context(), terminalFrom(cmd.Context()), force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	return cmd
}

func runConfigInit(ctx context.Context, term flow.Terminal, force bool) error {
	l := log.FromContext(ctx)

	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		c, ok := term.(confirmer)
		if !ok {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
		overwrite, err := c.Confirm(ctx, fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !overwrite {
			l.Println("Kept existing config")
			return nil
		}
	}

	path, err = config.Init(true)
	if err != nil {
		return err
	}
	l.Printf("Created config file: %s\n", path)
	return nil
}

// configView is the TOML shape shown by "config show".
type configView struct {
	Defaults             config.Defaults             `toml:"defaults"`
	TemplateRepositories []config.TemplateRepository `toml:"template_repositories,omitempty"`
	TemplateCatalogs     []config.TemplateCatalog    `toml:"template_catalogs,omitempty"`
	Hosts                map[string]config.Host      `toml:"hosts,omitempty"`
	Hooks                map[string]config.Hook      `toml:"hooks,omitempty"`
	Theme                config.ThemeConfig          `toml:"theme"`
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show the effective configuration after environment overrides.
Host tokens are masked.`,
		Example: `  up config show         # As TOML
  up config show --json  # As JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			view := newConfigView(configFrom(ctx))
			if jsonOutput {
				return out.JSON(view)
			}
			return toml.NewEncoder(out.Writer()).Encode(view)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newConfigView(cfg *config.Config) configView {
	hosts := make(map[string]config.Host, len(cfg.Hosts))
	for name, h := range cfg.Hosts {
		hosts[name] = config.Host{User: h.User, Token: maskToken(h.Token)}
	}
	return configView{
		Defaults:             cfg.Defaults,
		TemplateRepositories: cfg.TemplateRepositories,
		TemplateCatalogs:     cfg.TemplateCatalogs,
		Hosts:                hosts,
		Hooks:                maps.Clone(cfg.Hooks.Hooks),
		Theme:                cfg.Theme,
	}
}

// maskToken keeps the last four characters of long tokens.
func maskToken(token string) string {
	switch {
	case token == "":
		return ""
	case len(token) <= 8:
		return "****"
	default:
		return "****" + token[len(token)-4:]
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}

func newConfigHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Manage git host credentials",
		Long: `Manage credentials used to clone private https template repositories.

Credentials are stored in hosts.toml (mode 0600) next to config.toml.`,
	}
	cmd.AddCommand(newConfigHostSetCmd())
	cmd.AddCommand(newConfigHostListCmd())
	return cmd
}

type hostOptions struct {
	user   string
	token  string
	verify bool
}

func newConfigHostSetCmd() *cobra.Command {
	var opts hostOptions

	cmd := &cobra.Command{
		Use:   "set HOST",
		Short: "Store credentials for a git host",
		Args:  cobra.ExactArgs(1),
		Example: `  up config host set github.com                        # Asks for user and token
  up config host set gitlab.com --user me --token glpat-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runHostSet(ctx, terminalFrom(ctx), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.user, "user", "", "User name")
	cmd.Flags().StringVar(&opts.token, "token", "", "Access token")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Prompt even for values that are given")
	return cmd
}

func runHostSet(ctx context.Context, term flow.Terminal, host string, opts hostOptions) error {
	host = strings.TrimSpace(host)
	if host == "" {
		return errors.New("host is required")
	}
	existing, _ := configFrom(ctx).HostFor(host)

	mode := flow.Accept
	if opts.verify {
		mode = flow.Verify
	}
	f, err := newFlowBuilder(term).
		WithText("user").
		Name(fmt.Sprintf("User for %s", host)).
		DefaultValue(existing.User).
		ResultValue(opts.user).
		ResultMode(mode).
		And().
		WithText("token").
		Name(fmt.Sprintf("Token for %s", host)).
		ResultValue(opts.token).
		ResultMode(mode).
		And().
		Build()
	if err != nil {
		return err
	}
	res, err := f.Run(ctx)
	if err != nil {
		return needsInput(err, "pass --user and --token")
	}

	c := res.Context()
	h := config.Host{
		User:  strings.TrimSpace(c.GetString("user")),
		Token: strings.TrimSpace(c.GetString("token")),
	}
	if h.Token == "" {
		return errors.New("token must not be empty")
	}

	path, err := config.SetHost(host, h)
	if err != nil {
		return err
	}
	log.FromContext(ctx).Printf("Saved credentials for %s in %s\n", strings.ToLower(host), path)
	return nil
}

func newConfigHostListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List hosts with stored credentials",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			out := output.FromContext(ctx)
			for _, name := range slices.Sorted(maps.Keys(cfg.Hosts)) {
				h := cfg.Hosts[name]
				out.Printf("%s\t%s\t%s\n", name, h.User, styles.MutedStyle.Render(maskToken(h.Token)))
			}
			return nil
		},
	}
}
