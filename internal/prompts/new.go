package prompts

import (
	"fmt"
	"sync"
	"text/template"

	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

type implStore struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	dir       string
	logger    logger.Logger
}

// New creates a Store with the built-in prompts, then loads every
// <name>.tmpl found in dir. An empty dir keeps the defaults only.
func New(dir string, log logger.Logger) (Store, error) {
	s := &implStore{
		templates: make(map[string]*template.Template, len(defaults)),
		dir:       dir,
		logger:    log,
	}

	for name, text := range defaults {
		tmpl, err := parse(name, text)
		if err != nil {
			return nil, fmt.Errorf("parse built-in prompt %s: %w", name, err)
		}
		s.templates[name] = tmpl
	}

	if dir != "" {
		if err := s.loadDir(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parse(name, text string) (*template.Template, error) {
	return template.New(name).Option("missingkey=error").Parse(text)
}
