package kbsource

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// document is the on-disk/object layout. JSON is accepted too since it is a
// subset of YAML.
type document struct {
	Entries []faq.Entry `yaml:"entries"`
}

func decodeEntries(data []byte) ([]faq.Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge base document: %w", err)
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("knowledge base document has no entries")
	}
	return doc.Entries, nil
}
