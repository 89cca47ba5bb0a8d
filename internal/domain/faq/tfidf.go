package faq

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// minTermLength drops single character tokens from the vocabulary.
const minTermLength = 2

// VectorSpace is a fitted TF-IDF model together with the weighted corpus.
// It is never mutated after FitVectorSpace returns.
type VectorSpace struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	documents  [][]float64
}

// FitVectorSpace learns the vocabulary and smoothed IDF weights from corpus and
// projects every document into the resulting space.
func FitVectorSpace(corpus []string) *VectorSpace {
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range terms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	vocab := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	space := &VectorSpace{
		vocabulary: make(map[string]int, len(vocab)),
		terms:      vocab,
		idf:        make([]float64, len(vocab)),
	}
	n := float64(len(corpus))
	for i, term := range vocab {
		space.vocabulary[term] = i
		// smoothed: as if one extra document contained every term once
		space.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	space.documents = make([][]float64, len(corpus))
	for i, doc := range corpus {
		space.documents[i] = space.Transform(doc)
	}
	return space
}

// Dimension returns the vocabulary size.
func (s *VectorSpace) Dimension() int {
	return len(s.terms)
}

// Terms returns the vocabulary in column order.
func (s *VectorSpace) Terms() []string {
	return append([]string(nil), s.terms...)
}

// IDF returns the weight of term and whether it is part of the vocabulary.
func (s *VectorSpace) IDF(term string) (float64, bool) {
	idx, ok := s.vocabulary[term]
	if !ok {
		return 0, false
	}
	return s.idf[idx], true
}

// Transform projects doc into the fitted space. Unknown terms are ignored and
// the result is L2 normalized unless it is the zero vector.
func (s *VectorSpace) Transform(doc string) []float64 {
	vector := make([]float64, len(s.terms))
	for _, term := range terms(doc) {
		if idx, ok := s.vocabulary[term]; ok {
			vector[idx]++
		}
	}
	var norm float64
	for i := range vector {
		vector[i] *= s.idf[i]
		norm += vector[i] * vector[i]
	}
	if norm == 0 {
		return vector
	}
	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}

// Similarities returns the cosine similarity of query against every document.
func (s *VectorSpace) Similarities(query []float64) []float64 {
	scores := make([]float64, len(s.documents))
	for i, doc := range s.documents {
		scores[i] = CosineSimilarity(query, doc)
	}
	return scores
}

// CosineSimilarity returns 0 when either vector has no magnitude or the
// lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func terms(doc string) []string {
	fields := strings.Fields(doc)
	out := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTermLength {
			out = append(out, field)
		}
	}
	return out
}
