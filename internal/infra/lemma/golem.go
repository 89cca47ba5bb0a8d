package lemma

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// GolemLemmatizer resolves English lemmas from the golem dictionary.
type GolemLemmatizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewEnglish loads the English dictionary. Loading takes a moment and a few
// megabytes, so build it once per process.
func NewEnglish() (*GolemLemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &GolemLemmatizer{lemmatizer: lemmatizer}, nil
}

// Lemma implements faq.Lemmatizer. Unknown words come back unchanged.
func (l *GolemLemmatizer) Lemma(word string) string {
	if word == "" {
		return word
	}
	return l.lemmatizer.Lemma(word)
}

var _ faq.Lemmatizer = (*GolemLemmatizer)(nil)
