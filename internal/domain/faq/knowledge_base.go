package faq

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

var builtinEntries = []Entry{
	{
		Question: "What is the warranty period for Kawasaki super bikes?",
		Answer:   "Kawasaki super bikes come with a two-year warranty period.",
	},
	{
		Question: "How do I reset the ECU on my Kawasaki super bike?",
		Answer:   "To reset the ECU, turn the ignition on, hold the reset button for 10 seconds, then turn the ignition off.",
	},
	{
		Question: "Can I use my Kawasaki super bike internationally?",
		Answer:   "Yes, Kawasaki super bikes are designed to be used internationally. Make sure to check the local regulations.",
	},
	{
		Question: "What should I do if my Kawasaki super bike is not starting?",
		Answer:   "If your Kawasaki super bike is not starting, check the battery and fuel levels, then contact our support team if the issue persists.",
	},
	{
		Question: "Is there a mobile app for Kawasaki super bikes?",
		Answer:   "Yes, you can download the Kawasaki Rideology app from the App Store or Google Play.",
	},
	{
		Question: "Where can I find the nearest Kawasaki service center?",
		Answer:   "You can find the nearest Kawasaki service center by visiting our official website and using the service center locator.",
	},
	{
		Question: "What is the recommended tire pressure for Kawasaki super bikes?",
		Answer:   "The recommended tire pressure for Kawasaki super bikes is 36 psi for the front and 42 psi for the rear.",
	},
	{
		Question: "How often should I service my Kawasaki super bike?",
		Answer:   "It is recommended to service your Kawasaki super bike every 6,000 miles or every 6 months, whichever comes first.",
	},
	{
		Question: "What type of fuel should I use for my Kawasaki super bike?",
		Answer:   "Use premium unleaded gasoline with an octane rating of 91 or higher for optimal performance.",
	},
	{
		Question: "Can I customize my Kawasaki super bike with aftermarket parts?",
		Answer:   "Yes, you can customize your Kawasaki super bike with aftermarket parts. However, make sure they are compatible with your specific model.",
	},
}

// BuiltinEntries returns a copy of the Kawasaki super bike FAQ.
func BuiltinEntries() []Entry {
	return append([]Entry(nil), builtinEntries...)
}

// BuiltinSource serves the compiled-in entries.
type BuiltinSource struct{}

// Load implements KnowledgeSource.
func (BuiltinSource) Load(context.Context) ([]Entry, error) {
	return BuiltinEntries(), nil
}

// KnowledgeBase is the ordered, read-only list of FAQ entries.
type KnowledgeBase struct {
	entries []Entry
}

// NewKnowledgeBase validates and freezes the given entries.
func NewKnowledgeBase(entries []Entry) (*KnowledgeBase, error) {
	if len(entries) == 0 {
		return nil, apperrors.Wrap("invalid_knowledge_base", "knowledge base cannot be empty", nil)
	}
	frozen := make([]Entry, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" {
			return nil, apperrors.Wrap("invalid_knowledge_base", fmt.Sprintf("entry %d has an empty question", i), nil)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, apperrors.Wrap("invalid_knowledge_base", fmt.Sprintf("entry %d has an empty answer", i), nil)
		}
		frozen[i] = entry
	}
	return &KnowledgeBase{entries: frozen}, nil
}

// LoadKnowledgeBase pulls entries from source and builds the knowledge base.
func LoadKnowledgeBase(ctx context.Context, source KnowledgeSource) (*KnowledgeBase, error) {
	entries, err := source.Load(ctx)
	if err != nil {
		return nil, apperrors.Wrap("knowledge_source_error", "load knowledge base", err)
	}
	return NewKnowledgeBase(entries)
}

// Len reports the number of entries.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Entry returns the entry at index i.
func (kb *KnowledgeBase) Entry(i int) Entry {
	return kb.entries[i]
}

// Entries returns a copy of all entries in order.
func (kb *KnowledgeBase) Entries() []Entry {
	return append([]Entry(nil), kb.entries...)
}

func (kb *KnowledgeBase) questions() []string {
	out := make([]string, len(kb.entries))
	for i, entry := range kb.entries {
		out[i] = entry.Question
	}
	return out
}
