package symptom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTranslationsMissingFileIsEmpty(t *testing.T) {
	m, err := LoadTranslations(filepath.Join(t.TempDir(), "symptom.json"))
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.Equal(t, "fever", m.Label("fever"))
}

func TestDisplayOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fever":"காய்ச்சல்","cough":""}`), 0o644))

	m, err := LoadTranslations(path)
	require.NoError(t, err)

	opts := m.DisplayOptions([]string{"fever", "cough", "chills"})
	assert.Equal(t, []Option{
		{Value: "fever", Label: "fever (காய்ச்சல்)"},
		{Value: "cough", Label: "cough"},
		{Value: "chills", Label: "chills"},
	}, opts)
}

func TestLoadTranslationsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err := LoadTranslations(path)
	assert.Error(t, err)
}
