package prompts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

func TestDefaults(t *testing.T) {
	s, err := New("", logger.Nop())
	require.NoError(t, err)

	for _, name := range []string{SummarySystem, SummaryUser, FinalSystem, FinalUser, Quotes, Outline, Actionables} {
		assert.True(t, s.Has(name), name)
	}

	got, err := s.Render(SummaryUser, Data{Transcript: "the transcript"})
	require.NoError(t, err)
	assert.Equal(t, "the transcript", got)

	got, err = s.Render(Quotes, Data{Transcript: "hello"})
	require.NoError(t, err)
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "notable quotes")
}

func TestRenderUnknown(t *testing.T) {
	s, err := New("", logger.Nop())
	require.NoError(t, err)

	_, err = s.Render("missing", Data{})
	assert.Error(t, err)
	assert.False(t, s.Has("missing"))
}

func TestOverridesFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "final_system.tmpl"), []byte("Answer in French."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glossary.tmpl"), []byte("Terms in {{ .VideoID }}:\n{{ .Transcript }}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a prompt"), 0644))

	s, err := New(dir, logger.Nop())
	require.NoError(t, err)

	got, err := s.Render(FinalSystem, Data{})
	require.NoError(t, err)
	assert.Equal(t, "Answer in French.", got)

	got, err = s.Render("glossary", Data{VideoID: "abc", Transcript: "t"})
	require.NoError(t, err)
	assert.Equal(t, "Terms in abc:\nt", got)
	assert.False(t, s.Has("README"))
}

func TestBadTemplateRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "outline.tmpl"), []byte("{{ .Transcript "), 0644))

	_, err := New(dir, logger.Nop())
	assert.Error(t, err)
}

func TestLoadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, logger.Nop())
	require.NoError(t, err)

	bad := filepath.Join(dir, "summary_system.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{ if }}"), 0644))
	assert.Error(t, s.Load(bad))

	got, err := s.Render(SummarySystem, Data{})
	require.NoError(t, err)
	assert.Contains(t, got, "Summarize this partial transcript")
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary_system.tmpl"), []byte("Be brief."), 0644))

	assert.Eventually(t, func() bool {
		got, err := s.Render(SummarySystem, Data{})
		return err == nil && got == "Be brief."
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchWithoutDir(t *testing.T) {
	s, err := New("", logger.Nop())
	require.NoError(t, err)
	assert.Error(t, s.Watch(context.Background()))
}
