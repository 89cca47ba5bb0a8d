package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBuiltinMatcher(t *testing.T) *Matcher {
	t.Helper()
	kb, err := NewKnowledgeBase(BuiltinEntries())
	require.NoError(t, err)
	return NewMatcher(kb, NewNormalizer(mapLemmatizer{"bikes": "bike", "parts": "part", "starting": "start"}))
}

func TestMatcherSelfMatch(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	for i, entry := range BuiltinEntries() {
		match := matcher.Match(entry.Question)
		require.Equal(t, i, match.Index, entry.Question)
		require.Equal(t, entry.Answer, match.Entry.Answer)
		require.InDelta(t, 1.0, match.Score, 1e-9)
	}
}

func TestMatcherResetECUExample(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	match := matcher.Match("How do I reset the ECU?")
	require.Equal(t, 1, match.Index)
	require.Equal(t, "reset ecu", match.Normalized)
	require.Equal(t, "To reset the ECU, turn the ignition on, hold the reset button for 10 seconds, then turn the ignition off.", match.Entry.Answer)
	require.True(t, match.Satisfactory())
}

func TestMatcherCaseInsensitive(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	question := "What is the warranty period for Kawasaki super bikes?"
	lower := matcher.Match(question)
	upper := matcher.Match(strings.ToUpper(question))
	require.Equal(t, lower.Normalized, upper.Normalized)
	require.Equal(t, lower.Index, upper.Index)
	require.Equal(t, 0, upper.Index)
}

func TestMatcherEmptyQuestionFallsBackToFirstEntry(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	match := matcher.Match("")
	require.Equal(t, 0, match.Index)
	require.Equal(t, "", match.Normalized)
	require.Zero(t, match.Score)
	require.True(t, match.Satisfactory())

	match = matcher.Match("zzz qqq")
	require.Equal(t, 0, match.Index)
	require.Zero(t, match.Score)
}

func TestMatcherTieBreaksOnFirstIndex(t *testing.T) {
	kb, err := NewKnowledgeBase([]Entry{
		{Question: "oil change interval", Answer: "first"},
		{Question: "oil change interval", Answer: "second"},
	})
	require.NoError(t, err)
	matcher := NewMatcher(kb, NewNormalizer(nil))

	match := matcher.Match("oil change")
	require.Equal(t, 0, match.Index)
	require.Equal(t, "first", match.Entry.Answer)
}

func TestMatcherSatisfactoryAlwaysTrueForBuiltinEntries(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	for _, entry := range BuiltinEntries() {
		require.True(t, matcher.Match(entry.Question).Satisfactory(), entry.Question)
	}
	// the flag looks at the matched FAQ question, not the caller's text
	require.True(t, matcher.Match("I am not satisfied with the warranty").Satisfactory())
}

func TestMatchSatisfactoryMarker(t *testing.T) {
	match := Match{Entry: Entry{Question: "Customer is NOT SATISFIED with service"}}
	require.False(t, match.Satisfactory())
}

func TestMatcherCorpusIsNormalized(t *testing.T) {
	matcher := newBuiltinMatcher(t)

	corpus := matcher.Corpus()
	require.Len(t, corpus, 10)
	require.Equal(t, "reset ecu kawasaki super bike", corpus[1])
	require.Equal(t, "kawasaki super bike start", corpus[3])
}

func TestNewKnowledgeBaseValidation(t *testing.T) {
	_, err := NewKnowledgeBase(nil)
	require.Error(t, err)

	_, err = NewKnowledgeBase([]Entry{{Question: " ", Answer: "x"}})
	require.Error(t, err)

	_, err = NewKnowledgeBase([]Entry{{Question: "q", Answer: ""}})
	require.Error(t, err)

	kb, err := NewKnowledgeBase(BuiltinEntries())
	require.NoError(t, err)
	entries := kb.Entries()
	entries[0].Answer = "mutated"
	require.NotEqual(t, "mutated", kb.Entry(0).Answer)
}
