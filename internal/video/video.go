package video

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	reVideoID = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	reInPath  = regexp.MustCompile(`(?:embed/|vi?/|shorts/|live/|youtu\.be/)([0-9A-Za-z_-]{11})`)
)

// ExtractID returns the 11-character video ID from a YouTube URL or a bare ID.
func ExtractID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if reVideoID.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	if v := u.Query().Get("v"); reVideoID.MatchString(v) {
		return v, nil
	}

	if m := reInPath.FindStringSubmatch(u.Host + u.Path); m != nil {
		return m[1], nil
	}

	return "", fmt.Errorf("no video id in %q", raw)
}

// Layout is the per-job directory tree rooted at <output>/<videoID>.
type Layout struct {
	Root        string
	Audio       string
	Chunks      string
	Transcripts string
	Analysis    string
}

// NewLayout derives the job directories without touching the filesystem.
func NewLayout(outputDir, videoID string) Layout {
	root := filepath.Join(outputDir, videoID)
	return Layout{
		Root:        root,
		Audio:       filepath.Join(root, "audio"),
		Chunks:      filepath.Join(root, "chunks"),
		Transcripts: filepath.Join(root, "transcripts"),
		Analysis:    filepath.Join(root, "analysis"),
	}
}

// Create makes every directory of the layout.
func (l Layout) Create() error {
	for _, dir := range []string{l.Root, l.Audio, l.Chunks, l.Transcripts, l.Analysis} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Job is one end-to-end run of the pipeline for a single video URL.
type Job struct {
	RunID   string
	URL     string
	VideoID string
	Layout  Layout
}

// NewJob validates the URL and derives the job's working directory.
func NewJob(rawURL, outputDir string) (*Job, error) {
	id, err := ExtractID(rawURL)
	if err != nil {
		return nil, err
	}
	return &Job{
		RunID:   uuid.NewString(),
		URL:     strings.TrimSpace(rawURL),
		VideoID: id,
		Layout:  NewLayout(outputDir, id),
	}, nil
}

// ChunkName is the zero-padded base name shared by a chunk's artifacts,
// so that lexical order equals temporal order. The padding is three digits;
// the splitter never plans more than 999 chunks.
func ChunkName(seq int) string {
	return fmt.Sprintf("chunk_%03d", seq)
}
