package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/cashflow-insight/internal/config"
)

func TestKeywordStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detection.yaml")
	store := NewKeywordStore(path)

	original := &Keywords{
		Date:   []string{"datum", "buchungstag"},
		CashIn: []string{"einnahmen"},
	}
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestKeywordStoreLoadMissingFile(t *testing.T) {
	store := NewKeywordStore(filepath.Join(t.TempDir(), "absent", "detection.yaml"))

	keywords, err := store.Load()

	// An explicit path that does not exist is an error, unlike the default
	// lookup which falls back to empty keywords.
	assert.Error(t, err)
	assert.Nil(t, keywords)
}

func TestKeywordStoreLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detection.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date: [unclosed"), 0600))

	_, err := NewKeywordStore(path).Load()

	assert.Error(t, err)
}

func TestKeywordStoreSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config", "detection.yaml")

	err := NewKeywordStore(path).Save(&Keywords{Total: []string{"gesamt"}})

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestApplyToOverridesOnlyNonEmptyLists(t *testing.T) {
	cfg := config.DefaultDetection()
	defaultProjects := cfg.ProjectKeywords

	keywords := &Keywords{
		Date:    []string{"datum"},
		CashOut: []string{"ausgaben"},
	}
	keywords.ApplyTo(&cfg)

	assert.Equal(t, []string{"datum"}, cfg.DateKeywords)
	assert.Equal(t, []string{"ausgaben"}, cfg.CashOutKeywords)
	assert.Equal(t, defaultProjects, cfg.ProjectKeywords, "untouched lists keep their defaults")
	assert.NotEmpty(t, cfg.CashInKeywords)
}

func TestFindConfigFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("{}"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found, err := NewKeywordStore("").FindConfigFile(DefaultFileName)

	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, found)
}
