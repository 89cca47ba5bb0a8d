package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type askResult struct {
	Question        string  `json:"question"`
	Normalized      string  `json:"normalized"`
	MatchedIndex    int     `json:"matchedIndex"`
	MatchedQuestion string  `json:"matchedQuestion"`
	Score           float64 `json:"score"`
	Answer          string  `json:"answer"`
	Satisfactory    bool    `json:"satisfactory"`
}

func newAskCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question with the closest FAQ entry",
		Example: `  faqctl ask "How do I reset the ECU?"
  faqctl ask --no-lemma -o json what tire pressure should I use`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			matcher, err := opts.matcher(cmd.Context())
			if err != nil {
				return err
			}

			question := strings.TrimSpace(strings.Join(args, " "))
			match := matcher.Match(question)
			result := askResult{
				Question:        question,
				Normalized:      match.Normalized,
				MatchedIndex:    match.Index,
				MatchedQuestion: match.Entry.Question,
				Score:           match.Score,
				Answer:          match.Entry.Answer,
				Satisfactory:    match.Satisfactory(),
			}

			out := cmd.OutOrStdout()
			if opts.outputFmt == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "Normalized: %s\n", result.Normalized)
			fmt.Fprintf(out, "Matched:    #%d %s (score %.4f)\n", result.MatchedIndex, result.MatchedQuestion, result.Score)
			fmt.Fprintf(out, "Answer:     %s\n", result.Answer)
			return nil
		},
	}
}
