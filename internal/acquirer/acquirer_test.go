package acquirer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/pkg/executor/executortest"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestAcquireSuccess(t *testing.T) {
	dir := t.TempDir()
	fake := &executortest.Fake{
		Handle: func(ctx context.Context, name string, args ...string) (string, error) {
			tmpl := executortest.ArgValue(args, "-o")
			out := strings.Replace(tmpl, "%(ext)s", "flac", 1)
			return "", os.WriteFile(out, []byte("fLaC"), 0644)
		},
	}

	a := New(fake, logger.Nop(), Options{Binary: "yt-dlp-custom", SampleRate: 16000})
	got, err := a.Acquire(context.Background(), testURL, dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got != filepath.Join(dir, AudioFile) {
		t.Errorf("Acquire() = %q", got)
	}

	calls := fake.Calls()
	if len(calls) != 1 || calls[0].Name != "yt-dlp-custom" {
		t.Fatalf("calls = %+v", calls)
	}
	if pp := executortest.ArgValue(calls[0].Args, "--postprocessor-args"); pp != "ffmpeg:-ar 16000 -ac 1" {
		t.Errorf("postprocessor args = %q", pp)
	}
	if last := calls[0].Args[len(calls[0].Args)-1]; last != testURL {
		t.Errorf("last arg = %q, want url", last)
	}
}

func TestAcquireToolFailure(t *testing.T) {
	fake := &executortest.Fake{
		Handle: func(ctx context.Context, name string, args ...string) (string, error) {
			return "", errors.New("exit status 1")
		},
	}

	_, err := New(fake, logger.Nop(), Options{}).Acquire(context.Background(), testURL, t.TempDir())
	var acqErr *domain.AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("Acquire() error = %v, want AcquisitionError", err)
	}
	if acqErr.URL != testURL {
		t.Errorf("URL = %q", acqErr.URL)
	}
}

func TestAcquireMissingOutput(t *testing.T) {
	fake := &executortest.Fake{}

	_, err := New(fake, logger.Nop(), Options{}).Acquire(context.Background(), testURL, t.TempDir())
	var acqErr *domain.AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("Acquire() error = %v, want AcquisitionError", err)
	}
}

func TestAcquireResumeSkipsDownload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, AudioFile), []byte("fLaC"), 0644); err != nil {
		t.Fatal(err)
	}
	fake := &executortest.Fake{}

	if _, err := New(fake, logger.Nop(), Options{Resume: true}).Acquire(context.Background(), testURL, dir); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if n := len(fake.Calls()); n != 0 {
		t.Errorf("executor called %d times, want 0", n)
	}
}
