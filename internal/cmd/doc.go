// Package cmd runs external commands with stderr folded into errors.
//
//	if err := cmd.RunContext(ctx, dir, "git", "clone", "--depth", "1", url, dest); err != nil {
//	    return fmt.Errorf("clone %s: %w", url, err)
//	}
//
// Every execution is traced through the context logger in verbose mode.
package cmd
