package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lingoreel/internal/ingest"
	"lingoreel/internal/pipeline"
	"lingoreel/internal/visual"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var input string
	var limit int

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the image search queries for each input line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			path := firstNonEmpty(input, cfg.Paths.InputFile)
			if path == "" {
				return fmt.Errorf("no input file: pass --input or set paths.input_file")
			}
			res, err := ingest.ReadFile(path, ingest.Options{
				PrimaryIndex:   cfg.Input.PrimaryIndex,
				SecondaryIndex: cfg.Input.SecondaryIndex,
			})
			if err != nil {
				return err
			}

			planner := pipeline.NewPlanner(cfg, logger)
			lang := cfg.PrimaryLanguage()
			rows := make([][]string, 0, len(res.Lines))
			for i, line := range res.Lines {
				plan := planner.Build(line.Primary, lang)
				entries := append(visual.TagEntries(line.Tags, plan.Category), plan.Entries...)
				queries := make([]string, 0, len(entries))
				for j, e := range entries {
					if limit > 0 && j >= limit {
						queries = append(queries, fmt.Sprintf("(+%d more)", len(entries)-limit))
						break
					}
					queries = append(queries, e.Query)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					line.Primary,
					string(plan.Domain),
					strings.Join(plan.Hits, ", "),
					strings.Join(queries, "\n"),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Sentence", "Domain", "Concepts", "Queries"},
				rows,
				[]columnAlignment{alignRight},
				48,
			))
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "Skipped line %d: %s\n", s.LineNumber, s.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (defaults to paths.input_file)")
	cmd.Flags().IntVar(&limit, "limit", 6, "Maximum queries shown per line (0 shows all)")
	return cmd
}
