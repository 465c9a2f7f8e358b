package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure PresetStore implements the interface.
var _ driven.PromptStore = (*PresetStore)(nil)

// PresetStore loads editor prompts from user-editable files on disk,
// falling back to embedded defaults. Files are created lazily on first
// Load.
type PresetStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

var defaultPresets = map[string]string{
	driven.PromptRefinePresets: strings.Join(domain.DefaultRefinePresets, "\n") + "\n",
	driven.PromptAuditFix:      domain.DefaultAuditFixTemplate + "\n",
}

// NewPresetStore creates a new file-based preset store.
// If dir is empty, defaults to ~/.raiz/presets/.
func NewPresetStore(dir string) (*PresetStore, error) {
	if dir == "" {
		base, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(base, "presets")
	}

	return &PresetStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the named preset, from cache, disk or the embedded default.
func (s *PresetStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if preset, ok := defaultPresets[name]; ok {
			return preset, nil
		}
		return "", fmt.Errorf("preset store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if preset, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return preset, nil
	}
	s.mu.RUnlock()

	preset, err := s.loadFromFile(name)
	if err != nil {
		if def, ok := defaultPresets[name]; ok {
			return def, nil
		}
		return "", fmt.Errorf("load preset %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		preset = cached
	} else {
		s.cache[name] = preset
	}
	s.mu.Unlock()

	return preset, nil
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *PresetStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the preset directory path.
func (s *PresetStore) Dir() string {
	return s.dir
}

func (s *PresetStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create preset directory: %w", err)
		return
	}

	for name, content := range defaultPresets {
		path := filepath.Join(s.dir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default preset %q: %w", name, err)
				return
			}
		}
	}
}

func (s *PresetStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
