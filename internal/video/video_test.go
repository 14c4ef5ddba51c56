package video

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url with extra params", "https://youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"bare id", "  dQw4w9WgXcQ ", "dQw4w9WgXcQ", false},
		{"no id", "https://www.youtube.com/feed/trending", "", true},
		{"garbage", "not a url", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutCreate(t *testing.T) {
	out := t.TempDir()
	l := NewLayout(out, "dQw4w9WgXcQ")
	if err := l.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, dir := range []string{"audio", "chunks", "transcripts", "analysis"} {
		info, err := os.Stat(filepath.Join(out, "dQw4w9WgXcQ", dir))
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s missing: %v", dir, err)
		}
	}
}

func TestNewJob(t *testing.T) {
	job, err := NewJob("https://youtu.be/dQw4w9WgXcQ", "videos")
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}
	if job.RunID == "" {
		t.Error("RunID is empty")
	}
	if job.Layout.Chunks != filepath.Join("videos", "dQw4w9WgXcQ", "chunks") {
		t.Errorf("Chunks = %q", job.Layout.Chunks)
	}
}

func TestChunkNameSortsTemporally(t *testing.T) {
	var names []string
	for seq := 12; seq >= 1; seq-- {
		names = append(names, ChunkName(seq))
	}
	sort.Strings(names)
	if names[0] != "chunk_001" || names[9] != "chunk_010" || names[11] != "chunk_012" {
		t.Errorf("lexical order broken: %v", names)
	}
}
