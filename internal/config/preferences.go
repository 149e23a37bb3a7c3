package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme is returned for themes other than light and dark
var ErrInvalidTheme = errors.New("theme must be light or dark")

// Preferences are process-wide UI settings kept between runs
type Preferences struct {
	Theme        string           `yaml:"theme" json:"theme"`
	LastCustomer *models.Customer `yaml:"last_customer,omitempty" json:"lastCustomer,omitempty"`
}

// PreferencesStore loads preferences at startup and saves them on every change
type PreferencesStore struct {
	path  string
	mu    sync.RWMutex
	prefs Preferences
}

// LoadPreferences reads the YAML file at path. A missing file yields the defaults.
func LoadPreferences(path string) (*PreferencesStore, error) {
	s := &PreferencesStore{path: path, prefs: Preferences{Theme: ThemeLight}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Debug("No preferences file, using defaults")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	if s.prefs.Theme != ThemeDark {
		s.prefs.Theme = ThemeLight
	}
	return s, nil
}

// Get returns a copy of the current preferences
func (s *PreferencesStore) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.prefs
	if p.LastCustomer != nil {
		c := *p.LastCustomer
		p.LastCustomer = &c
	}
	return p
}

// SetTheme switches the theme and persists it
func (s *PreferencesStore) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = theme
	return s.save()
}

// RememberCustomer stores the contact data of the latest order
func (s *PreferencesStore) RememberCustomer(c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.LastCustomer = &c
	return s.save()
}

// save writes a temporary file and renames it over path. Callers hold mu.
func (s *PreferencesStore) save() error {
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
