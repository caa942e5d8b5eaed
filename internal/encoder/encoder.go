// Package encoder loads the label encoders fitted at training time.
package encoder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fraudwatch/internal/model"
)

// LabelEncoder maps a fixed vocabulary of category strings to dense
// non-negative integer codes. The artifact format is {"classes": [...]};
// the code of a category is its index in that list.
type LabelEncoder struct {
	name    string
	classes map[string]int
}

// New builds an encoder over the given vocabulary.
func New(name string, classes []string) *LabelEncoder {
	m := make(map[string]int, len(classes))
	for i, c := range classes {
		m[c] = i
	}
	return &LabelEncoder{name: name, classes: m}
}

// Load reads an encoder artifact from disk. A missing or malformed
// artifact refuses startup.
func Load(name, path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s encoder: %w", name, err)
	}

	var artifact struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%s encoder: parse %s: %w", name, path, err)
	}
	if len(artifact.Classes) == 0 {
		return nil, fmt.Errorf("%s encoder: %s has an empty vocabulary", name, path)
	}

	return New(name, artifact.Classes), nil
}

// Transform returns the code of category. Unseen categories are rejected;
// encoders are read-only after startup.
func (e *LabelEncoder) Transform(category string) (int, error) {
	code, ok := e.classes[category]
	if !ok {
		return 0, &model.UnknownCategoryError{Encoder: e.name, Value: category}
	}
	return code, nil
}
