package faq

import (
	"strings"
	"unicode"
)

const maxLemmaRounds = 4

// Lemmatizer reduces a lowercase word to its dictionary base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// IdentityLemmatizer leaves words untouched.
type IdentityLemmatizer struct{}

// Lemma implements Lemmatizer.
func (IdentityLemmatizer) Lemma(word string) string { return word }

// Normalizer turns free text into the space separated lemma form used for matching.
type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer Lemmatizer
}

// NewNormalizer builds a normalizer over the English stopword list.
func NewNormalizer(lemmatizer Lemmatizer) *Normalizer {
	if lemmatizer == nil {
		lemmatizer = IdentityLemmatizer{}
	}
	return &Normalizer{
		stopwords:  newStopwordSet(englishStopwords),
		lemmatizer: lemmatizer,
	}
}

// Normalize lowercases, tokenizes, drops stopwords and lemmatizes text.
// Empty or stopword-only input yields "".
func (n *Normalizer) Normalize(text string) string {
	tokens := tokenize(strings.ToLower(text))
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if n.isStopword(token) {
			continue
		}
		lemma := n.lemma(token)
		if n.isStopword(lemma) {
			continue
		}
		kept = append(kept, lemma)
	}
	return strings.Join(kept, " ")
}

// lemma follows the lemmatizer until the word maps to itself, so a second
// Normalize pass leaves the result unchanged. Empty or non-alphanumeric
// lemmas ("spin-dry") are ignored and the last alphanumeric form is kept.
func (n *Normalizer) lemma(token string) string {
	current := token
	for i := 0; i < maxLemmaRounds; i++ {
		next := strings.ToLower(strings.TrimSpace(n.lemmatizer.Lemma(current)))
		if next == "" || next == current || !isAlphanumeric(next) {
			break
		}
		current = next
	}
	return current
}

func (n *Normalizer) isStopword(token string) bool {
	_, ok := n.stopwords[token]
	return ok
}

// tokenize splits on every rune that is not a letter or digit, so only
// alphanumeric tokens survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isAlphanumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
