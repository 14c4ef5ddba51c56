package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

// Progress shows a bar for the per-chunk stages and formatter lines for the
// rest. Meant for an interactive stderr.
type Progress struct {
	f *Formatter
	w io.Writer

	mu    sync.Mutex
	total int
	bar   *progressbar.ProgressBar
}

func NewProgress(w io.Writer) *Progress {
	return &Progress{f: NewFormatter(w), w: w}
}

func (p *Progress) StageStarted(stage domain.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finishLocked()
	switch stage {
	case domain.StageTranscribing:
		p.bar = p.newBar("📝 Transcribing")
	case domain.StageAnalyzing:
		p.bar = p.newBar("🤖 Summarizing")
	default:
		p.f.StageStarted(stage)
	}
}

func (p *Progress) ChunksPlanned(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = n
	p.f.ChunksPlanned(n)
}

func (p *Progress) ChunkTranscribed(domain.Transcript) { p.step() }

func (p *Progress) ChunkSummarized(domain.Summary) { p.step() }

// Finish closes the current bar, if any.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finishLocked()
}

func (p *Progress) step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *Progress) newBar(desc string) *progressbar.ProgressBar {
	total := p.total
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *Progress) finishLocked() {
	if p.bar == nil {
		return
	}
	if !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
	p.bar = nil
}
