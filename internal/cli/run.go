package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tubedigest/internal/acquirer"
	"github.com/nguyentantai21042004/tubedigest/internal/analyzer"
	"github.com/nguyentantai21042004/tubedigest/internal/config"
	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/gemini"
	"github.com/nguyentantai21042004/tubedigest/internal/groq"
	"github.com/nguyentantai21042004/tubedigest/internal/logger"
	"github.com/nguyentantai21042004/tubedigest/internal/output"
	"github.com/nguyentantai21042004/tubedigest/internal/processor"
	"github.com/nguyentantai21042004/tubedigest/internal/prompts"
	"github.com/nguyentantai21042004/tubedigest/internal/splitter"
	"github.com/nguyentantai21042004/tubedigest/internal/transcriber"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
	"github.com/nguyentantai21042004/tubedigest/pkg/executor"
)

var _ processor.Observer = (*output.Progress)(nil)

func runDigest(cmd *cobra.Command, videoURL string, flags *rootFlags) error {
	started := time.Now()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	// Checked before any download or API call.
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stderr := cmd.ErrOrStderr()
	log := logger.NewWithWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	var progress *output.Progress
	if f, ok := stderr.(*os.File); ok && output.IsTerminal(f) {
		progress = output.NewProgress(stderr)
	}

	proc, err := buildProcessor(ctx, cfg, log, progress)
	if err != nil {
		return err
	}

	res, err := proc.Process(ctx, videoURL)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	width := 0
	if f, ok := cmd.OutOrStdout().(*os.File); ok && output.IsTerminal(f) {
		width = output.TerminalWidth(f)
	}
	if err := output.WriteAnalysis(cmd.OutOrStdout(), res.Final.Text, width); err != nil {
		return fmt.Errorf("print final analysis: %w", err)
	}

	output.NewFormatter(stderr).JobComplete(output.Summary{
		Dir:          res.Job.Layout.Root,
		Final:        res.Final.Path,
		Docx:         res.Final.DocxPath,
		Report:       res.ReportPath,
		TotalCost:    res.Report.Cost.TotalCost,
		AudioSeconds: res.Report.Cost.TotalAudioSeconds,
		Elapsed:      time.Since(started),
	})
	return nil
}

// buildProcessor wires every stage from cfg. A nil observer disables
// progress output.
func buildProcessor(ctx context.Context, cfg *config.Config, log logger.Logger, observer *output.Progress) (processor.Processor, error) {
	exec := executor.New(cfg.Tools.Timeout)

	store, err := prompts.New(cfg.Prompts.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}
	if cfg.Prompts.Watch && cfg.Prompts.Dir != "" {
		go func() {
			if err := store.Watch(ctx); err != nil {
				log.Warn(ctx, "Prompt hot reload stopped: %v", err)
			}
		}()
	}

	client := groq.New(log, groq.Options{
		BaseURL:           cfg.API.BaseURL,
		APIKey:            cfg.GroqAPIKey,
		Timeout:           cfg.API.Timeout,
		MaxRetries:        cfg.Retries(),
		RequestsPerMinute: cfg.API.RequestsPerMinute,
	})

	completer, err := newCompleter(cfg, client, log)
	if err != nil {
		return nil, err
	}

	audioPricing := cost.Pricing{
		AudioPerHour:     cfg.Transcription.PricePerHour,
		MinBilledSeconds: cfg.Transcription.MinBilledSeconds,
	}
	chatPricing := cost.Pricing{
		InputPerMillion:  cfg.Analysis.InputPerMillion,
		OutputPerMillion: cfg.Analysis.OutputPerMillion,
	}

	deps := processor.Deps{
		Acquirer: acquirer.New(exec, log, acquirer.Options{
			Binary:     cfg.Tools.YtDlp,
			SampleRate: cfg.Splitter.SampleRate,
			Resume:     cfg.Resume(),
		}),
		Splitter: splitter.New(exec, log, splitter.Config{
			FFmpeg:     cfg.Tools.FFmpeg,
			FFprobe:    cfg.Tools.FFprobe,
			SampleRate: cfg.Splitter.SampleRate,
			Resume:     cfg.Resume(),
		}),
		NewTranscriber: func(job *video.Job, tracker cost.Tracker) transcriber.Transcriber {
			return transcriber.New(client, tracker, log, transcriber.Config{
				Dir:           job.Layout.Transcripts,
				Model:         cfg.Transcription.Model,
				Language:      cfg.Transcription.Language,
				Prompt:        cfg.Transcription.Prompt,
				Pricing:       audioPricing,
				Resume:        cfg.Resume(),
				MaxConcurrent: cfg.Performance.MaxConcurrent,
			})
		},
		NewAnalyzer: func(job *video.Job, tracker cost.Tracker) analyzer.Analyzer {
			return analyzer.New(completer, store, tracker, log, analyzer.Config{
				Dir:     job.Layout.Analysis,
				VideoID: job.VideoID,
				Pricing: chatPricing,
				Docx:    cfg.DocxEnabled(),
				Resume:  cfg.Resume(),
			})
		},
	}

	opts := processor.Options{
		OutputDir:     cfg.Paths.Output,
		MaxChunkBytes: cfg.MaxChunkBytes(),
		SafetyMargin:  cfg.Splitter.SafetyMargin,
		MaxResplits:   cfg.MaxResplits(),
		ResplitFactor: cfg.Splitter.ResplitFactor,
		Extras:        cfg.Analysis.Extras,
		CleanupChunks: cfg.Pipeline.CleanupChunks,
	}
	if observer != nil {
		opts.Observer = observer
	}

	return processor.New(deps, log, opts), nil
}

func newCompleter(cfg *config.Config, client groq.Client, log logger.Logger) (analyzer.Completer, error) {
	if cfg.Analysis.Provider == config.ProviderGemini {
		c, err := gemini.New(cfg.GeminiAPIKeys, log, gemini.Options{
			Model:       cfg.Analysis.Model,
			Temperature: cfg.Temperature(),
			MaxTokens:   cfg.Analysis.MaxTokens,
			Timeout:     cfg.API.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return c, nil
	}

	return analyzer.NewGroqCompleter(client, analyzer.GroqOptions{
		Model:           cfg.Analysis.Model,
		Temperature:     cfg.Temperature(),
		MaxTokens:       cfg.Analysis.MaxTokens,
		ReasoningEffort: cfg.Analysis.ReasoningEffort,
	}), nil
}
