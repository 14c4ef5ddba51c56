package prompts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/watcher"
)

const templateExt = ".tmpl"

func (s *implStore) Render(name string, data Data) (string, error) {
	s.mu.RLock()
	tmpl, ok := s.templates[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("prompt %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (s *implStore) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.templates[name]
	return ok
}

// Load parses path and registers it under its base name without extension.
// A template that fails to parse leaves the previous version in place.
func (s *implStore) Load(path string) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read prompt %s: %w", path, err)
	}

	tmpl, err := parse(name, string(data))
	if err != nil {
		return fmt.Errorf("parse prompt %s: %w", path, err)
	}

	s.mu.Lock()
	s.templates[name] = tmpl
	s.mu.Unlock()
	return nil
}

// Watch reloads templates from the prompt directory as they change, until
// ctx is done.
func (s *implStore) Watch(ctx context.Context) error {
	if s.dir == "" {
		return errors.New("no prompt directory configured")
	}

	w, err := watcher.New(s.dir, func(ctx context.Context, path string) error {
		if err := s.Load(path); err != nil {
			return err
		}
		s.logger.Info(ctx, "Reloaded prompt %s", filepath.Base(path))
		return nil
	}, s.logger, watcher.Options{
		Extensions: []string{templateExt},
		Settle:     200 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("watch prompts: %w", err)
	}
	defer w.Stop()

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *implStore) loadDir() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read prompt dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != templateExt {
			continue
		}
		if err := s.Load(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
