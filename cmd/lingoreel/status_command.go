package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lingoreel/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var network bool
	var checkLLM bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check directories, binaries and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if ctx.configSeen {
				fmt.Fprintf(out, "Config: %s\n", ctx.configPath)
			} else {
				fmt.Fprintln(out, "Config: defaults (no config file found)")
			}
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Network: network, LLM: checkLLM})
			for _, r := range results {
				kind := statusOK
				switch {
				case !r.Passed && r.Optional:
					kind = statusWarn
				case !r.Passed:
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return errors.New(pluralize(len(failed), "required check failed", "required checks failed"))
			}
			fmt.Fprintln(out, "Ready to render")
			return nil
		},
	}

	cmd.Flags().BoolVar(&network, "network", false, "Probe image provider credentials with a live search")
	cmd.Flags().BoolVar(&checkLLM, "llm", false, "Check the line generation LLM endpoint")
	return cmd
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
