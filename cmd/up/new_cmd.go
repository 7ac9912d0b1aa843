package main

import (
	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:     "new",
		Short:   "Create a new project from a template",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Create a new project from a template repository.

Missing values are asked for interactively. Values given as flags, via
UP_PROJECT_NAME / UP_PACKAGE_NAME / UP_TEMPLATE or as config defaults are
accepted without prompting; --verify asks anyway, with them pre-filled.

The template is cloned shallowly. With a package, the module path in
go.mod and all imports of it are rewritten. The project is created in
<path>/<name> (spaces in the name become underscores), then hooks with
on = ["new"] run inside it.

Hook placeholders: {path}, {name}, {package}, {template}, {trigger} and
any --arg KEY=VALUE as {KEY}.`,
		Example: `  up new                                  # Ask for everything
  up new --name billing --template web    # Use a configured template
  up new --url https://github.com/acme/tmpl --package github.com/acme/billing
  up new --name api --verify              # Confirm pre-filled values
  up new --hook ide --arg editor=code     # Run a specific hook
  up new --copy                           # Copy the created path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd.Context(), terminalFrom(cmd.Context()), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Configured template repository name")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Template repository URL or local path")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Go module path for the new project")
	cmd.Flags().StringVar(&opts.path, "path", "", "Parent directory (default: current directory)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Prompt even for values that are already known")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the project path to the clipboard")
	cmd.Flags().StringVar(&opts.hook, "hook", "", "Run only this hook")
	cmd.Flags().BoolVar(&opts.noHook, "no-hook", false, "Skip hooks")
	cmd.Flags().StringSliceVarP(&opts.args, "arg", "a", nil, "Set hook variable KEY=VALUE")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "Print hook commands without executing")

	cmd.MarkFlagsMutuallyExclusive("template", "url")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.MarkFlagDirname("path")
	cmd.RegisterFlagCompletionFunc("template", completeTemplateName)
	cmd.RegisterFlagCompletionFunc("hook", completeHookName)
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)

	return cmd
}
