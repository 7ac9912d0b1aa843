package main

import (
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completeTemplateName completes configured template repository names.
func completeTemplateName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := configFrom(cmd.Context())

	var matches []string
	for _, r := range cfg.TemplateRepositories {
		if strings.HasPrefix(strings.ToLower(r.Name), strings.ToLower(toComplete)) {
			matches = append(matches, r.Name+"\t"+r.Description)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeHookName completes configured hook names.
func completeHookName(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := configFrom(cmd.Context())

	var matches []string
	for _, name := range slices.Sorted(maps.Keys(cfg.Hooks.Hooks)) {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name+"\t"+cfg.Hooks.Hooks[name].Description)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
