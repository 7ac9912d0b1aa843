package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore      = "core"
	GroupTemplates = "templates"
	GroupConfig    = "config"
)

// exitCancelled is the exit code after the user aborts a prompt.
const exitCancelled = 130

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create new projects from template repositories",
		Long: `up creates new projects from git template repositories.

It asks for the missing details (name, template, module path, target
directory), clones the template, rewrites the Go module path and runs
your post-generation hooks.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupTemplates, Title: "Template Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newWizardCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute loads .env and config, then runs the root command.
func Execute() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Theme)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)
	ctx = output.WithPrinter(ctx, os.Stdout)

	err = newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, flow.ErrCancelled) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, styles.MutedStyle.Render("Cancelled"))
		cancel()
		os.Exit(exitCancelled)
	}
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: ")+err.Error())
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'up -h' for help")
	cancel()
	os.Exit(1)
}
