package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newEntriesCommand(opts *options) *cobra.Command {
	var showNormalized bool
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !showNormalized {
				kb, err := opts.knowledgeBase(cmd.Context())
				if err != nil {
					return err
				}
				if opts.outputFmt == "json" {
					return json.NewEncoder(out).Encode(map[string]any{"entries": kb.Entries()})
				}
				for i, entry := range kb.Entries() {
					fmt.Fprintf(out, "%d. %s\n   %s\n", i, entry.Question, entry.Answer)
				}
				return nil
			}

			matcher, err := opts.matcher(cmd.Context())
			if err != nil {
				return err
			}
			corpus := matcher.Corpus()
			if opts.outputFmt == "json" {
				return json.NewEncoder(out).Encode(map[string]any{
					"entries":    matcher.KnowledgeBase().Entries(),
					"normalized": corpus,
					"vocabulary": matcher.Space().Terms(),
				})
			}
			for i, entry := range matcher.KnowledgeBase().Entries() {
				fmt.Fprintf(out, "%d. %s\n   -> %s\n", i, entry.Question, corpus[i])
			}
			fmt.Fprintf(out, "vocabulary: %d terms\n", matcher.Space().Dimension())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showNormalized, "normalized", false, "show the normalized corpus and vocabulary size")
	return cmd
}
