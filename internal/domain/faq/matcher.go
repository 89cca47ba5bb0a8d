package faq

import "strings"

const unsatisfiedMarker = "not satisfied"

// Match is the outcome of looking up one question.
type Match struct {
	Index      int
	Entry      Entry
	Score      float64
	Normalized string
	Vector     []float64
}

// Satisfactory reports whether the matched FAQ question carries the
// "not satisfied" marker.
// TODO: decide with product whether this should inspect the user's question;
// it currently looks at the matched FAQ key and is true for every builtin entry.
func (m Match) Satisfactory() bool {
	return !strings.Contains(strings.ToLower(m.Entry.Question), unsatisfiedMarker)
}

// Matcher resolves free-text questions to the closest knowledge base entry.
// All state is computed in NewMatcher and shared read-only afterwards.
type Matcher struct {
	kb         *KnowledgeBase
	normalizer *Normalizer
	corpus     []string
	space      *VectorSpace
}

// NewMatcher normalizes the knowledge base questions and fits the vector space.
func NewMatcher(kb *KnowledgeBase, normalizer *Normalizer) *Matcher {
	questions := kb.questions()
	corpus := make([]string, len(questions))
	for i, q := range questions {
		corpus[i] = normalizer.Normalize(q)
	}
	return &Matcher{
		kb:         kb,
		normalizer: normalizer,
		corpus:     corpus,
		space:      FitVectorSpace(corpus),
	}
}

// Match returns the entry with the highest cosine similarity to question.
// Ties, including the all-zero case, resolve to the lowest index.
func (m *Matcher) Match(question string) Match {
	normalized := m.normalizer.Normalize(question)
	vector := m.space.Transform(normalized)
	scores := m.space.Similarities(vector)

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Match{
		Index:      best,
		Entry:      m.kb.Entry(best),
		Score:      scores[best],
		Normalized: normalized,
		Vector:     vector,
	}
}

// Normalize exposes the normalizer the matcher was built with.
func (m *Matcher) Normalize(text string) string {
	return m.normalizer.Normalize(text)
}

// KnowledgeBase returns the entries the matcher was built from.
func (m *Matcher) KnowledgeBase() *KnowledgeBase {
	return m.kb
}

// Corpus returns the normalized knowledge base questions.
func (m *Matcher) Corpus() []string {
	return append([]string(nil), m.corpus...)
}

// Space returns the fitted vector space.
func (m *Matcher) Space() *VectorSpace {
	return m.space
}
