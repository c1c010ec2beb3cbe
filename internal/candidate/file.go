package candidate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Value any    `yaml:"value"`
}

type fileDocument struct {
	Candidates []fileEntry `yaml:"candidates"`
}

// LoadFile reads a YAML candidate list from path.
//
// The document is either a mapping with a top-level "candidates" key or a bare
// sequence of entries. Entries without a label are skipped.
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML candidate document.
func Parse(data []byte) (Static, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var entries []fileEntry
		if seqErr := yaml.Unmarshal(data, &entries); seqErr != nil {
			return nil, fmt.Errorf("parse candidates: %w", err)
		}
		doc.Candidates = entries
	}
	items := make(Static, 0, len(doc.Candidates))
	for _, entry := range doc.Candidates {
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			continue
		}
		items = append(items, Candidate{
			ID:      strings.TrimSpace(entry.ID),
			Label:   label,
			Payload: entry.Value,
		})
	}
	return items, nil
}
