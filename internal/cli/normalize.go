package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNormalizeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text]",
		Short: "Print the normalized form of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateOutput(); err != nil {
				return err
			}
			normalizer, err := opts.normalizer()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			normalized := normalizer.Normalize(text)

			if opts.outputFmt == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"text":       text,
					"normalized": normalized,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}
}
