// Package config is a file-backed key/value store for editor settings.
// Keys are qualified as "Section:Key" and persist to a YAML document with
// one mapping per section. Reads and writes touch memory only; the file is
// read once at Load and written at explicit Save boundaries, never from the
// per-frame path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const defaultSection = "General"

type Store struct {
	path     string
	sections map[string]map[string]any
	dirty    bool
}

func NewStore(path string) *Store {
	return &Store{
		path:     path,
		sections: make(map[string]map[string]any),
	}
}

// Load reads the config file. A missing file is not an error: the store
// starts empty and will create the file on the first Save.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("config: no file yet, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	sections := make(map[string]map[string]any)
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.sections = sections
	if s.sections == nil {
		s.sections = make(map[string]map[string]any)
	}
	log.Info().Str("path", s.path).Int("sections", len(s.sections)).Msg("config: loaded")
	return nil
}

// Save writes the store to disk if anything changed since the last Save.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	data, err := yaml.Marshal(s.sections)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	s.dirty = false
	log.Debug().Str("path", s.path).Msg("config: saved")
	return nil
}

// splitKey parses "Section:Key"; a bare key lands in the General section.
func splitKey(key string) (section, name string) {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return defaultSection, key
}

func (s *Store) get(key string) (any, bool) {
	section, name := splitKey(key)
	values, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	v, ok := values[name]
	return v, ok
}

func (s *Store) set(key string, value any) {
	section, name := splitKey(key)
	values, ok := s.sections[section]
	if !ok {
		values = make(map[string]any)
		s.sections[section] = values
	}
	values[name] = value
	s.dirty = true
}

func (s *Store) GetBool(key string, defaultValue bool) bool {
	v, ok := s.get(key)
	if !ok {
		return defaultValue
	}
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	default:
		return defaultValue
	}
}

func (s *Store) SetBool(key string, value bool) {
	s.set(key, value)
}

func (s *Store) GetInt(key string, defaultValue int) int {
	v, ok := s.get(key)
	if !ok {
		return defaultValue
	}
	if i, ok := v.(int); ok {
		return i
	}
	return defaultValue
}

func (s *Store) SetInt(key string, value int) {
	s.set(key, value)
}

func (s *Store) GetFloat(key string, defaultValue float64) float64 {
	v, ok := s.get(key)
	if !ok {
		return defaultValue
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return defaultValue
	}
}

func (s *Store) SetFloat(key string, value float64) {
	s.set(key, value)
}

func (s *Store) GetString(key string, defaultValue string) string {
	v, ok := s.get(key)
	if !ok {
		return defaultValue
	}
	if str, ok := v.(string); ok {
		return str
	}
	return defaultValue
}

func (s *Store) SetString(key, value string) {
	s.set(key, value)
}

// RegisterBoolOption writes the default if the key is absent and returns
// the effective value. Used at startup so the file documents every option.
func (s *Store) RegisterBoolOption(key string, defaultValue bool) bool {
	if _, ok := s.get(key); !ok {
		s.set(key, defaultValue)
	}
	return s.GetBool(key, defaultValue)
}

// RegisterFloatOption is the float counterpart of RegisterBoolOption.
func (s *Store) RegisterFloatOption(key string, defaultValue float64) float64 {
	if _, ok := s.get(key); !ok {
		s.set(key, defaultValue)
	}
	return s.GetFloat(key, defaultValue)
}
