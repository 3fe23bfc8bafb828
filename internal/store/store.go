// Package store persists the detection keyword lists as YAML so the
// classification vocabulary stays data that users can edit, version and
// share, independent of the scanner code.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/cashflow-insight/internal/config"
	"fjacquet/cashflow-insight/internal/logging"
)

// DefaultFileName is the keyword file looked up in the standard locations.
const DefaultFileName = "detection.yaml"

var log = logging.GetLogger()

// SetLogger allows setting a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Keywords mirrors the keyword lists of the detection configuration in
// their YAML form. Empty lists mean "keep the configured default".
type Keywords struct {
	Date    []string `yaml:"date,omitempty"`
	Project []string `yaml:"project,omitempty"`
	CashIn  []string `yaml:"cash_in,omitempty"`
	CashOut []string `yaml:"cash_out,omitempty"`
	Total   []string `yaml:"total,omitempty"`
}

// ApplyTo overrides the non-empty keyword lists on a detection config.
func (k *Keywords) ApplyTo(cfg *config.DetectionConfig) {
	if len(k.Date) > 0 {
		cfg.DateKeywords = k.Date
	}
	if len(k.Project) > 0 {
		cfg.ProjectKeywords = k.Project
	}
	if len(k.CashIn) > 0 {
		cfg.CashInKeywords = k.CashIn
	}
	if len(k.CashOut) > 0 {
		cfg.CashOutKeywords = k.CashOut
	}
	if len(k.Total) > 0 {
		cfg.TotalKeywords = k.Total
	}
}

// KeywordStore loads and saves detection keyword files.
type KeywordStore struct {
	// Path pins the store to one file. When empty, FindConfigFile
	// resolves the default name through the standard locations.
	Path string
}

// NewKeywordStore creates a store bound to the given path, or to the
// standard lookup locations when path is empty.
func NewKeywordStore(path string) *KeywordStore {
	return &KeywordStore{Path: path}
}

// FindConfigFile looks for a keyword file in the standard locations:
// the working directory, ./config, and ~/.config/cashflow-insight.
func (s *KeywordStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "cashflow-insight", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the keyword file. A missing file is not an error; it yields an
// empty Keywords that overrides nothing.
func (s *KeywordStore) Load() (*Keywords, error) {
	path := s.Path
	if path == "" {
		found, err := s.FindConfigFile(DefaultFileName)
		if err != nil {
			log.Debug("no detection keyword file found, using configured defaults")
			return &Keywords{}, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keyword file %s: %w", path, err)
	}

	var keywords Keywords
	if err := yaml.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("error parsing keyword file %s: %w", path, err)
	}

	log.Info("loaded detection keywords", logging.Field{Key: logging.FieldFile, Value: path})
	return &keywords, nil
}

// Save writes the keyword lists to the store's path (or the default name in
// the working directory), creating parent directories as needed.
func (s *KeywordStore) Save(keywords *Keywords) error {
	path := s.Path
	if path == "" {
		path = DefaultFileName
	}

	data, err := yaml.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("error marshaling keywords: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing keyword file %s: %w", path, err)
	}

	log.Info("saved detection keywords", logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}
