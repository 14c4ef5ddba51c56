package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

func TestFormatterEvents(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.StageStarted(domain.StageDownloading)
	f.ChunksPlanned(3)
	f.ChunkTranscribed(domain.Transcript{Seq: 2, AudioSeconds: 1620})
	f.ChunkSummarized(domain.Summary{Seq: 2})

	out := buf.String()
	assert.Contains(t, out, "Downloading audio")
	assert.Contains(t, out, "3 chunk(s)")
	assert.Contains(t, out, "chunk 2 transcribed (27:00)")
	assert.Contains(t, out, "chunk 2 summarized")
}

func TestFormatterJobComplete(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).JobComplete(Summary{
		Dir:          "videos/abc",
		Final:        "videos/abc/analysis/final_analysis.txt",
		Report:       "videos/abc/analysis/cost_report.json",
		TotalCost:    0.0123,
		AudioSeconds: 4000,
		Elapsed:      95 * time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "videos/abc/analysis/final_analysis.txt")
	assert.Contains(t, out, "$0.0123")
	assert.Contains(t, out, "01:06:40")
	assert.Contains(t, out, "1m35s")
	assert.NotContains(t, out, "Word document")
}

func TestSetupCheck(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.SetupCheck("ffmpeg", true, "/usr/bin/ffmpeg")
	f.SetupCheck("yt-dlp", false, "not found")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "✅ ffmpeg")
	assert.Contains(t, lines[1], "❌ yt-dlp")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{4 * time.Second, "4s"},
		{61 * time.Second, "1m01s"},
		{3*time.Hour + 5*time.Second, "3h00m05s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestWriteAnalysisPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, "  # Title\n\nBody text.  \n", 0))
	assert.Equal(t, "# Title\n\nBody text.\n", buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome **bold** insight.", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "insight")
}

func TestProgressBars(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	p.StageStarted(domain.StageSplitting)
	p.ChunksPlanned(2)
	p.StageStarted(domain.StageTranscribing)
	p.ChunkTranscribed(domain.Transcript{Seq: 1})
	p.ChunkTranscribed(domain.Transcript{Seq: 2})
	p.StageStarted(domain.StageAnalyzing)
	p.ChunkSummarized(domain.Summary{Seq: 1})
	p.Finish()

	out := buf.String()
	assert.Contains(t, out, "Splitting into chunks")
	assert.Contains(t, out, "Transcribing")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Summarizing")
	assert.Nil(t, p.bar)
}
