package profileStore

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/akolanti/portfolio/pkg/logger_i"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default_profile.toml
var defaultProfile []byte

type Store struct {
	mu      sync.RWMutex
	path    string
	current *portfolio.Profile
	logger  *logger_i.Logger
}

// New loads the profile at path, or the embedded default profile when path is empty.
func New(path string) (*Store, error) {
	s := &Store{path: path, logger: logger_i.NewLogger("ProfileStore")}
	profile, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current = profile
	return s, nil
}

func Load(path string) (*portfolio.Profile, error) {
	data := defaultProfile
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		data = raw
	}
	return Decode(data)
}

func Decode(data []byte) (*portfolio.Profile, error) {
	var profile portfolio.Profile
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if profile.Name == "" {
		return nil, fmt.Errorf("decode profile: name is required")
	}
	return &profile, nil
}

func (s *Store) Current() *portfolio.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload swaps in the profile on disk; on failure the previous profile stays active.
func (s *Store) Reload() error {
	profile, err := Load(s.path)
	if err != nil {
		s.logger.Error("profile reload failed, keeping previous profile", "path", s.path, "error", err)
		return err
	}
	s.mu.Lock()
	s.current = profile
	s.mu.Unlock()
	s.logger.Info("profile reloaded", "path", s.path)
	return nil
}

// Watch reloads the profile whenever its file changes. It returns once the watcher is running and stops with ctx.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	//editors replace files on save, so the directory is watched instead of the file
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch profile dir: %w", err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Closing profile watcher")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					_ = s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("profile watcher error", "error", err)
			}
		}
	}()
	return nil
}
