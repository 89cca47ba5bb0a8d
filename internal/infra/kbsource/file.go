package kbsource

import (
	"context"
	"fmt"
	"os"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// FileSource reads entries from a YAML or JSON file.
type FileSource struct {
	path string
}

// NewFileSource constructs the source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements faq.KnowledgeSource.
func (s *FileSource) Load(_ context.Context) ([]faq.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base file: %w", err)
	}
	return decodeEntries(data)
}

var _ faq.KnowledgeSource = (*FileSource)(nil)
