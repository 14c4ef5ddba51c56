package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/prompts"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
	"github.com/nguyentantai21042004/tubedigest/pkg/fsutil"
)

const (
	opSummarize = "summarize"
	opFinalize  = "finalize"
	opExtra     = "extra"
)

// Summarize writes chunk_NNN_summary.txt for one transcript. A summary on
// disk is reused only when the transcript itself was reused.
func (a *implAnalyzer) Summarize(ctx context.Context, t domain.Transcript) (domain.Summary, error) {
	out := filepath.Join(a.cfg.Dir, video.ChunkName(t.Seq)+summarySuffix)

	if t.Cached {
		if text, ok := a.cached(ctx, out, cost.Entry{CallType: cost.CallSummary, Seq: t.Seq}); ok {
			return domain.Summary{Seq: t.Seq, Path: out, Text: text, Cached: true}, nil
		}
	}
	a.fresh.Store(true)

	data := prompts.Data{VideoID: a.cfg.VideoID, Seq: t.Seq, Transcript: t.Text}
	text, err := a.run(ctx, cost.Entry{CallType: cost.CallSummary, Seq: t.Seq}, prompts.SummarySystem, prompts.SummaryUser, data)
	if err != nil {
		return domain.Summary{}, &domain.AnalysisError{Op: opSummarize, Seq: t.Seq, Err: err}
	}

	if err := fsutil.WriteAtomic(out, []byte(text)); err != nil {
		return domain.Summary{}, &domain.AnalysisError{Op: opSummarize, Seq: t.Seq, Err: err}
	}

	a.logger.Info(ctx, "Summarized chunk %d (%d chars)", t.Seq, len(text))
	return domain.Summary{Seq: t.Seq, Path: out, Text: text}, nil
}

// Finalize synthesizes all summaries, in Seq order, into the final analysis.
// The analysis on disk is reused only when every summary was.
func (a *implAnalyzer) Finalize(ctx context.Context, summaries []domain.Summary) (domain.FinalAnalysis, error) {
	ordered, err := orderSummaries(summaries)
	if err != nil {
		return domain.FinalAnalysis{}, &domain.AnalysisError{Op: opFinalize, Err: err}
	}

	out := filepath.Join(a.cfg.Dir, FinalAnalysisFile)
	final := domain.FinalAnalysis{Path: out}

	var (
		text string
		ok   bool
	)
	if allCached(ordered) && !a.fresh.Load() {
		text, ok = a.cached(ctx, out, cost.Entry{CallType: cost.CallFinalize})
	}
	if !ok {
		data := prompts.Data{VideoID: a.cfg.VideoID, Summaries: FormatSummaries(ordered)}
		text, err = a.run(ctx, cost.Entry{CallType: cost.CallFinalize}, prompts.FinalSystem, prompts.FinalUser, data)
		if err != nil {
			return domain.FinalAnalysis{}, &domain.AnalysisError{Op: opFinalize, Err: err}
		}
		if err := fsutil.WriteAtomic(out, []byte(text)); err != nil {
			return domain.FinalAnalysis{}, &domain.AnalysisError{Op: opFinalize, Err: err}
		}
	}
	final.Text = text

	if a.cfg.Docx {
		docxPath := filepath.Join(a.cfg.Dir, FinalDocxFile)
		title := "Final Analysis"
		if a.cfg.VideoID != "" {
			title += ": " + a.cfg.VideoID
		}
		if err := markdownToDocx(title, text, docxPath); err != nil {
			return domain.FinalAnalysis{}, &domain.AnalysisError{Op: opFinalize, Err: fmt.Errorf("export docx: %w", err)}
		}
		final.DocxPath = docxPath
	}

	a.logger.Info(ctx, "Final analysis written: %s", out)
	return final, nil
}

// Extras runs each named prompt over the combined transcript and writes
// <name>.txt. Unknown names fail before any call is made. Outputs on disk
// are not reused once this analyzer has produced a fresh summary.
func (a *implAnalyzer) Extras(ctx context.Context, transcript string, names []string) ([]Extra, error) {
	for _, name := range names {
		if !a.prompts.Has(name) {
			return nil, &domain.AnalysisError{Op: opExtra, Err: fmt.Errorf("unknown prompt %q", name)}
		}
	}

	extras := make([]Extra, 0, len(names))
	for _, name := range names {
		out := filepath.Join(a.cfg.Dir, name+".txt")
		entry := cost.Entry{CallType: cost.CallExtra, Name: name}

		var (
			text string
			ok   bool
		)
		if !a.fresh.Load() {
			text, ok = a.cached(ctx, out, entry)
		}
		if !ok {
			var err error
			text, err = a.run(ctx, entry, "", name, prompts.Data{VideoID: a.cfg.VideoID, Transcript: transcript})
			if err != nil {
				return nil, &domain.AnalysisError{Op: opExtra + " " + name, Err: err}
			}
			if err := fsutil.WriteAtomic(out, []byte(text)); err != nil {
				return nil, &domain.AnalysisError{Op: opExtra + " " + name, Err: err}
			}
			a.logger.Info(ctx, "Extra prompt %s written", name)
		}
		extras = append(extras, Extra{Name: name, Path: out, Text: text})
	}
	return extras, nil
}

// FormatSummaries renders ordered summaries as "Chunk N Summary:" blocks
// separated by blank lines.
func FormatSummaries(summaries []domain.Summary) string {
	blocks := make([]string, 0, len(summaries))
	for _, s := range summaries {
		blocks = append(blocks, fmt.Sprintf("Chunk %d Summary:\n%s", s.Seq, strings.TrimSpace(s.Text)))
	}
	return strings.Join(blocks, "\n\n")
}

func allCached(summaries []domain.Summary) bool {
	for _, s := range summaries {
		if !s.Cached {
			return false
		}
	}
	return true
}

// orderSummaries sorts by Seq and rejects duplicates or non-positive Seq.
func orderSummaries(summaries []domain.Summary) ([]domain.Summary, error) {
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no summaries to finalize")
	}

	ordered := append([]domain.Summary(nil), summaries...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	for i, s := range ordered {
		if s.Seq <= 0 {
			return nil, fmt.Errorf("summary has invalid seq %d", s.Seq)
		}
		if i > 0 && s.Seq <= ordered[i-1].Seq {
			return nil, fmt.Errorf("duplicate summary for chunk %d", s.Seq)
		}
	}
	return ordered, nil
}

// run renders the prompts, calls the model and records the call.
// An empty systemName sends no system prompt.
func (a *implAnalyzer) run(ctx context.Context, entry cost.Entry, systemName, userName string, data prompts.Data) (string, error) {
	var system string
	if systemName != "" {
		var err error
		if system, err = a.prompts.Render(systemName, data); err != nil {
			return "", err
		}
	}
	user, err := a.prompts.Render(userName, data)
	if err != nil {
		return "", err
	}

	entry.Model = a.completer.Model()

	start := time.Now()
	res, err := a.completer.Complete(ctx, system, user)
	entry.Latency = time.Since(start)

	if err != nil {
		entry.Error = err.Error()
		a.tracker.Record(entry)
		return "", err
	}

	if res.Model != "" {
		entry.Model = res.Model
	}
	entry.PromptTokens = res.PromptTokens
	entry.CompletionTokens = res.CompletionTokens
	entry.UsageSource = cost.UsageActual
	if !res.UsageReported {
		entry.PromptTokens = cost.EstimateTokens(system) + cost.EstimateTokens(user)
		entry.CompletionTokens = cost.EstimateTokens(res.Text)
		entry.UsageSource = cost.UsageEstimate
	}
	entry.Cost = a.cfg.Pricing.ChatCost(entry.PromptTokens, entry.CompletionTokens)
	a.tracker.Record(entry)

	return res.Text, nil
}

// cached returns the content of an existing output when resume is enabled
// and records a zero-cost cached entry for it.
func (a *implAnalyzer) cached(ctx context.Context, path string, entry cost.Entry) (string, bool) {
	if !a.cfg.Resume || !fsutil.NonEmpty(path) {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	a.logger.Info(ctx, "Reusing existing %s", filepath.Base(path))
	entry.Model = a.completer.Model()
	entry.Cached = true
	a.tracker.Record(entry)
	return string(data), true
}
