package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/ui/static"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   "Manage template repositories",
		Aliases: []string{"tmpl"},
		GroupID: GroupTemplates,
		Long: `Manage the template repositories "up new" creates projects from.

Template repositories are configured as [[template_repositories]] in
config.toml.`,
	}
	cmd.AddCommand(newTemplateListCmd())
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured template repositories",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  up template list         # Table with the default marked
  up template list --json  # Machine readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplateList(cmd, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runTemplateList(cmd *cobra.Command, jsonOutput bool) error {
	ctx := cmd.Context()
	cfg := configFrom(ctx)
	out := output.FromContext(ctx)

	if jsonOutput {
		repos := cfg.TemplateRepositories
		if repos == nil {
			repos = []config.TemplateRepository{}
		}
		return out.JSON(repos)
	}
	if len(cfg.TemplateRepositories) == 0 {
		log.FromContext(ctx).Println("No template repositories configured (see 'up config init')")
		return nil
	}
	out.Print(static.RenderTemplates(cfg.TemplateRepositories, cfg.Defaults.TemplateRepository))
	return nil
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   "Manage template catalogs",
		GroupID: GroupTemplates,
		Long:    `Template catalogs are configured as [[template_catalogs]] in config.toml.`,
	}
	cmd.AddCommand(newCatalogListCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured template catalogs",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			out := output.FromContext(ctx)

			if jsonOutput {
				catalogs := cfg.TemplateCatalogs
				if catalogs == nil {
					catalogs = []config.TemplateCatalog{}
				}
				return out.JSON(catalogs)
			}
			if len(cfg.TemplateCatalogs) == 0 {
				log.FromContext(ctx).Println("No template catalogs configured")
				return nil
			}
			out.Print(static.RenderCatalogs(cfg.TemplateCatalogs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
