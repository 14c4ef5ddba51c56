package output

import (
	"fmt"
	"io"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/metadata"
)

// Formatter writes one human-readable line per pipeline event. It satisfies
// processor.Observer for non-interactive output.
type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

var stageLabels = map[domain.Stage]string{
	domain.StageDownloading:  "⬇️  Downloading audio...",
	domain.StageSplitting:    "✂️  Splitting into chunks...",
	domain.StageTranscribing: "📝 Transcribing chunks...",
	domain.StageAnalyzing:    "🤖 Summarizing transcripts...",
	domain.StageFinalizing:   "🧠 Writing final analysis...",
}

func (f *Formatter) StageStarted(stage domain.Stage) {
	if label, ok := stageLabels[stage]; ok {
		fmt.Fprintln(f.w, label)
		return
	}
	fmt.Fprintf(f.w, "%s...\n", stage)
}

func (f *Formatter) ChunksPlanned(n int) {
	fmt.Fprintf(f.w, "   %d chunk(s)\n", n)
}

func (f *Formatter) ChunkTranscribed(t domain.Transcript) {
	fmt.Fprintf(f.w, "   ✅ chunk %d transcribed (%s)\n", t.Seq, metadata.FormatDuration(t.AudioSeconds))
}

func (f *Formatter) ChunkSummarized(s domain.Summary) {
	fmt.Fprintf(f.w, "   ✅ chunk %d summarized\n", s.Seq)
}

// Summary is what JobComplete prints after a successful run.
type Summary struct {
	Dir          string
	Final        string
	Docx         string
	Report       string
	TotalCost    float64
	AudioSeconds float64
	Elapsed      time.Duration
}

func (f *Formatter) JobComplete(s Summary) {
	fmt.Fprintf(f.w, "\n📁 Video saved: %s\n", s.Dir)
	fmt.Fprintf(f.w, "   Final analysis: %s\n", s.Final)
	if s.Docx != "" {
		fmt.Fprintf(f.w, "   Word document:  %s\n", s.Docx)
	}
	fmt.Fprintf(f.w, "   Cost report:    %s\n", s.Report)
	fmt.Fprintf(f.w, "💰 $%.4f for %s of audio in %s\n",
		s.TotalCost, metadata.FormatDuration(s.AudioSeconds), formatDuration(s.Elapsed))
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
