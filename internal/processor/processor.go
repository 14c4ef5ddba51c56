package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/internal/splitter"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
)

// run is the mutable state of one Process call.
type run struct {
	url         string
	started     time.Time
	state       *jobState
	tracker     cost.Tracker
	job         *video.Job
	audioPath   string
	chunks      []domain.Chunk
	transcripts []domain.Transcript
	final       domain.FinalAnalysis
	fullText    string
}

// Process downloads, splits, transcribes and analyzes one video. Stages run
// strictly in order; the first error moves the job to Failed and is returned
// as *domain.StageError. Artifacts already written are left on disk.
func (p *implProcessor) Process(ctx context.Context, videoURL string) (*Result, error) {
	r := &run{
		url:     videoURL,
		started: time.Now(),
		state:   newJobState(),
		tracker: cost.New(),
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoURL)
	p.logger.Info(ctx, "========================================")

	// Step 1: Download audio
	if err := p.enter(r, domain.StageDownloading); err != nil {
		return nil, err
	}
	job, err := video.NewJob(videoURL, p.opts.OutputDir)
	if err != nil {
		return nil, p.fail(ctx, r, &domain.AcquisitionError{URL: videoURL, Err: err})
	}
	r.job = job
	ctx = logger.WithVideo(ctx, job.VideoID)

	if err := job.Layout.Create(); err != nil {
		return nil, p.fail(ctx, r, &domain.AcquisitionError{URL: videoURL, Err: err})
	}
	r.audioPath, err = p.deps.Acquirer.Acquire(ctx, videoURL, job.Layout.Audio)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}

	// Step 2: Split into size-bounded chunks
	if err := p.enter(r, domain.StageSplitting); err != nil {
		return nil, err
	}
	r.chunks, err = p.split(ctx, r.audioPath, job.Layout.Chunks)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}
	if err := p.syncManifest(ctx, job.Layout, r.chunks); err != nil {
		return nil, p.fail(ctx, r, &domain.SplitError{Err: err})
	}
	p.opts.Observer.ChunksPlanned(len(r.chunks))

	// Step 3: Transcribe every chunk
	if err := p.enter(r, domain.StageTranscribing); err != nil {
		return nil, err
	}
	tr := p.deps.NewTranscriber(job, r.tracker)
	r.transcripts, err = tr.TranscribeAll(ctx, r.chunks, p.opts.Observer.ChunkTranscribed)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}
	if err := matchTranscripts(r.chunks, r.transcripts); err != nil {
		return nil, p.fail(ctx, r, err)
	}
	r.fullText, err = tr.Combine(r.transcripts)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}

	// Step 4: Summarize each transcript, then run extra prompts
	if err := p.enter(r, domain.StageAnalyzing); err != nil {
		return nil, err
	}
	an := p.deps.NewAnalyzer(job, r.tracker)
	summaries := make([]domain.Summary, 0, len(r.transcripts))
	for _, t := range r.transcripts {
		s, err := an.Summarize(ctx, t)
		if err != nil {
			return nil, p.fail(ctx, r, err)
		}
		summaries = append(summaries, s)
		p.opts.Observer.ChunkSummarized(s)
	}
	if len(p.opts.Extras) > 0 {
		if _, err := an.Extras(ctx, r.fullText, p.opts.Extras); err != nil {
			return nil, p.fail(ctx, r, err)
		}
	}

	// Step 5: Final analysis and report
	if err := p.enter(r, domain.StageFinalizing); err != nil {
		return nil, err
	}
	r.final, err = an.Finalize(ctx, summaries)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}

	report := p.buildReport(r, StatusDone, nil)
	reportPath, err := writeReport(job.Layout.Analysis, report)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}

	if err := p.enter(r, domain.StageDone); err != nil {
		return nil, err
	}

	if p.opts.CleanupChunks {
		p.removeChunks(ctx, job.Layout.Chunks)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Final analysis: %s", r.final.Path)
	p.logger.Info(ctx, "Cost report: %s", reportPath)
	p.logger.Info(ctx, "Total cost: $%.6f for %.1fs of audio", report.Cost.TotalCost, report.Cost.TotalAudioSeconds)
	p.logger.Info(ctx, "Processing time: %s", time.Since(r.started).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return &Result{
		Job:        job,
		Final:      r.final,
		ReportPath: reportPath,
		Report:     report,
	}, nil
}

func (p *implProcessor) enter(r *run, stage domain.Stage) error {
	if err := r.state.Transition(stage); err != nil {
		return err
	}
	if !stage.Terminal() {
		p.opts.Observer.StageStarted(stage)
	}
	return nil
}

// fail moves the job to Failed. A report marked failed is written only when
// the job had reached Finalizing.
func (p *implProcessor) fail(ctx context.Context, r *run, cause error) error {
	stage := r.state.Current()
	stageErr := &domain.StageError{Stage: stage, Err: cause}

	if stage == domain.StageFinalizing && r.job != nil {
		report := p.buildReport(r, StatusFailed, stageErr)
		if _, err := writeReport(r.job.Layout.Analysis, report); err != nil {
			p.logger.Warn(ctx, "Failed to write cost report: %v", err)
		}
	}

	if err := r.state.Transition(domain.StageFailed); err != nil {
		p.logger.Error(ctx, "Cannot mark job failed: %v", err)
	}

	p.logger.Error(ctx, "Processing failed during %s: %v", stage, cause)
	return stageErr
}

// split runs the splitter, shrinking the safety margin and retrying when a
// produced chunk still exceeds the cap.
func (p *implProcessor) split(ctx context.Context, audioPath, chunksDir string) ([]domain.Chunk, error) {
	margin := p.opts.SafetyMargin

	for attempt := 0; ; attempt++ {
		chunks, err := p.deps.Splitter.Split(ctx, audioPath, chunksDir, splitter.Options{
			MaxBytes: p.opts.MaxChunkBytes,
			Margin:   margin,
		})

		var sizeErr *domain.ChunkSizeExceededError
		if err == nil || !errors.As(err, &sizeErr) || attempt >= p.opts.MaxResplits {
			return chunks, err
		}

		margin *= p.opts.ResplitFactor
		p.logger.Warn(ctx, "%v; re-splitting with safety margin %.3f (attempt %d/%d)",
			sizeErr, margin, attempt+1, p.opts.MaxResplits)

		if err := p.deps.Splitter.Clean(chunksDir); err != nil {
			return nil, &domain.SplitError{Err: err}
		}
	}
}

// matchTranscripts checks there is exactly one transcript per chunk, in order.
func matchTranscripts(chunks []domain.Chunk, transcripts []domain.Transcript) error {
	if len(chunks) != len(transcripts) {
		return fmt.Errorf("got %d transcripts for %d chunks", len(transcripts), len(chunks))
	}
	for i := range chunks {
		if chunks[i].Seq != transcripts[i].Seq {
			return fmt.Errorf("transcript %d does not match chunk %d", transcripts[i].Seq, chunks[i].Seq)
		}
	}
	return nil
}
