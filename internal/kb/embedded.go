package kb

import (
	_ "embed"
	"fmt"
)

// defaultKB is the built-in knowledge base baked into the binary, so the
// advisor runs without any external files.
//
//go:embed kb.yaml
var defaultKB []byte

// LoadDefault parses the embedded knowledge base. A parse failure here means
// the shipped document is broken, so the error is worth treating as fatal.
func LoadDefault() (*KnowledgeBase, error) {
	k, err := Parse(defaultKB)
	if err != nil {
		return nil, fmt.Errorf("embedded knowledge base: %w", err)
	}
	return k, nil
}
