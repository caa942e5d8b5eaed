package encoder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudwatch/internal/model"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encoder.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndTransform(t *testing.T) {
	path := writeArtifact(t, `{"classes": ["ACH", "Wire", "Cheque"]}`)

	enc, err := Load("payment", path)
	require.NoError(t, err)

	code, err := enc.Transform("Wire")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	code, err = enc.Transform("ACH")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestTransformUnknownCategory(t *testing.T) {
	enc := New("payment", []string{"ACH", "Wire"})

	_, err := enc.Transform("Bitcoin")
	require.Error(t, err)

	var unknown *model.UnknownCategoryError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "payment", unknown.Encoder)
	assert.Equal(t, "Bitcoin", unknown.Value)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load("account", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadMalformedArtifact(t *testing.T) {
	path := writeArtifact(t, `{"classes": "nope"`)
	_, err := Load("account", path)
	require.Error(t, err)
}

func TestLoadEmptyVocabulary(t *testing.T) {
	path := writeArtifact(t, `{"classes": []}`)
	_, err := Load("account", path)
	require.Error(t, err)
}
