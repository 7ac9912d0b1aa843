package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/up/internal/output"
	"github.com/raphi011/up/internal/wizardfile"
)

func newWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wizard",
		Short:   "Run declarative wizard files",
		GroupID: GroupCore,
		Long: `Run a sequence of prompts declared in a YAML wizard file and print
the answers.

Steps are text, path, single or multi. Each step's value can be given
inline (value/values) or in an --answers JSON document, looked up by the
step's "answer" path (default: its id). Whether known values are
accepted, verified or ignored follows the step's mode, then the file's
mode; --verify overrides both.`,
	}
	cmd.AddCommand(newWizardRunCmd())
	return cmd
}

type wizardOptions struct {
	answers    string
	verify     bool
	jsonOutput bool
}

func newWizardRunCmd() *cobra.Command {
	var opts wizardOptions

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a wizard file",
		Args:  cobra.ExactArgs(1),
		Example: `  up wizard run service.yaml
  up wizard run service.yaml --answers answers.json --json
  up wizard run service.yaml --answers answers.json --verify`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.answers, "answers", "", "JSON file with pre-supplied answers")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Prompt for every step, pre-filled with known values")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output answers as JSON")

	return cmd
}

func runWizard(cmd *cobra.Command, path string, opts wizardOptions) error {
	ctx := cmd.Context()

	file, err := wizardfile.Load(path)
	if err != nil {
		return err
	}
	var answers *wizardfile.Answers
	if opts.answers != "" {
		if answers, err = wizardfile.LoadAnswers(opts.answers); err != nil {
			return err
		}
	}

	b := newFlowBuilder(terminalFrom(ctx))
	if err := file.Apply(b, wizardfile.Options{Answers: answers, Verify: opts.verify}); err != nil {
		return err
	}
	f, err := b.Build()
	if err != nil {
		return err
	}
	res, err := f.Run(ctx)
	if err != nil {
		return needsInput(err, "supply the value inline or via --answers")
	}

	w := output.FromContext(ctx).Writer()
	if opts.jsonOutput {
		return wizardfile.WriteJSON(w, res.Context())
	}
	return wizardfile.WriteText(w, res.Context())
}
