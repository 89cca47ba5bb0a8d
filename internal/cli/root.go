package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	"github.com/yanqian/faq-chatbot/internal/infra/kbsource"
	"github.com/yanqian/faq-chatbot/internal/infra/lemma"
)

type options struct {
	kbFile    string
	noLemma   bool
	outputFmt string
}

// NewRootCommand creates the faqctl command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "faqctl",
		Short: "Query the Kawasaki FAQ matcher from the terminal",
		Long: `faqctl runs the same normalizer and TF-IDF matcher as the HTTP service
without starting a server. It is handy for checking how a question is
normalized and which FAQ entry it lands on.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.kbFile, "kb-file", "", "YAML knowledge base file (defaults to the builtin FAQ)")
	rootCmd.PersistentFlags().BoolVar(&opts.noLemma, "no-lemma", false, "skip lemmatization")
	rootCmd.PersistentFlags().StringVarP(&opts.outputFmt, "output", "o", "text", "output format (text, json)")

	rootCmd.AddCommand(newAskCommand(opts))
	rootCmd.AddCommand(newNormalizeCommand(opts))
	rootCmd.AddCommand(newEntriesCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "faqctl %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}

func (o *options) normalizer() (*faq.Normalizer, error) {
	if o.noLemma {
		return faq.NewNormalizer(nil), nil
	}
	lemmatizer, err := lemma.NewEnglish()
	if err != nil {
		return nil, err
	}
	return faq.NewNormalizer(lemmatizer), nil
}

func (o *options) knowledgeBase(ctx context.Context) (*faq.KnowledgeBase, error) {
	var source faq.KnowledgeSource = faq.BuiltinSource{}
	if o.kbFile != "" {
		source = kbsource.NewFileSource(o.kbFile)
	}
	return faq.LoadKnowledgeBase(ctx, source)
}

func (o *options) matcher(ctx context.Context) (*faq.Matcher, error) {
	kb, err := o.knowledgeBase(ctx)
	if err != nil {
		return nil, err
	}
	normalizer, err := o.normalizer()
	if err != nil {
		return nil, err
	}
	return faq.NewMatcher(kb, normalizer), nil
}

func (o *options) validateOutput() error {
	switch o.outputFmt {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", o.outputFmt)
	}
}
