package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/groq"
	"github.com/nguyentantai21042004/tubedigest/internal/video"
	"github.com/nguyentantai21042004/tubedigest/pkg/fsutil"
)

// Transcribe sends one chunk to the speech API and writes chunk_NNN.txt.
// An existing transcript is reused when resume is enabled.
func (t *implTranscriber) Transcribe(ctx context.Context, chunk domain.Chunk) (domain.Transcript, error) {
	out := t.path(chunk.Seq)

	if t.cfg.Resume && fsutil.Exists(out) {
		text, err := os.ReadFile(out)
		if err == nil {
			t.logger.Info(ctx, "Transcript already exists: %s", filepath.Base(out))
			t.tracker.Record(cost.Entry{
				CallType:     cost.CallTranscription,
				Model:        t.cfg.Model,
				Seq:          chunk.Seq,
				AudioSeconds: chunk.Duration,
				Cached:       true,
			})
			return domain.Transcript{Seq: chunk.Seq, Path: out, Text: string(text), AudioSeconds: chunk.Duration, Cached: true}, nil
		}
		t.logger.Warn(ctx, "Re-transcribing %s: %v", filepath.Base(out), err)
	}

	t.logger.Info(ctx, "Transcribing %s", chunk)

	start := time.Now()
	res, err := t.speech.Transcribe(ctx, groq.TranscriptionRequest{
		Path:     chunk.Path,
		Model:    t.cfg.Model,
		Language: t.cfg.Language,
		Prompt:   t.cfg.Prompt,
	})
	latency := time.Since(start)

	if err != nil {
		t.tracker.Record(cost.Entry{
			CallType: cost.CallTranscription,
			Model:    t.cfg.Model,
			Seq:      chunk.Seq,
			Latency:  latency,
			Error:    err.Error(),
		})
		return domain.Transcript{}, &domain.TranscriptionError{Seq: chunk.Seq, Err: err}
	}

	seconds := res.Duration
	if seconds <= 0 {
		seconds = chunk.Duration
	}

	t.tracker.Record(cost.Entry{
		CallType:     cost.CallTranscription,
		Model:        t.cfg.Model,
		Seq:          chunk.Seq,
		AudioSeconds: seconds,
		Cost:         t.cfg.Pricing.AudioCost(seconds),
		Latency:      latency,
	})

	if err := fsutil.WriteAtomic(out, []byte(res.Text)); err != nil {
		return domain.Transcript{}, &domain.TranscriptionError{Seq: chunk.Seq, Err: err}
	}

	t.logger.Info(ctx, "Transcribed chunk %d in %s (%d chars)", chunk.Seq, latency.Round(time.Millisecond), len(res.Text))
	return domain.Transcript{Seq: chunk.Seq, Path: out, Text: res.Text, AudioSeconds: seconds}, nil
}

// TranscribeAll runs up to MaxConcurrent chunks at a time. The first error
// cancels chunks not yet started; transcripts already written stay on disk.
func (t *implTranscriber) TranscribeAll(ctx context.Context, chunks []domain.Chunk, onDone func(domain.Transcript)) ([]domain.Transcript, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := newSemaphore(t.cfg.MaxConcurrent)
	results := make([]domain.Transcript, len(chunks))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i, chunk := range chunks {
		if err := sem.acquire(ctx); err != nil {
			fail(&domain.TranscriptionError{Seq: chunk.Seq, Err: err})
			break
		}

		wg.Add(1)
		go func(i int, chunk domain.Chunk) {
			defer wg.Done()
			defer sem.release()

			tr, err := t.Transcribe(ctx, chunk)
			if err != nil {
				fail(err)
				return
			}
			results[i] = tr
			if onDone != nil {
				mu.Lock()
				onDone(tr)
				mu.Unlock()
			}
		}(i, chunk)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Seq < results[b].Seq })
	return results, nil
}

// Combine joins transcripts in Seq order into full_transcript.txt.
func (t *implTranscriber) Combine(transcripts []domain.Transcript) (string, error) {
	ordered := append([]domain.Transcript(nil), transcripts...)
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].Seq < ordered[b].Seq })

	parts := make([]string, 0, len(ordered))
	for _, tr := range ordered {
		if text := strings.TrimSpace(tr.Text); text != "" {
			parts = append(parts, text)
		}
	}
	combined := strings.Join(parts, " ")

	if err := fsutil.WriteAtomic(filepath.Join(t.cfg.Dir, FullTranscriptFile), []byte(combined)); err != nil {
		return "", fmt.Errorf("write full transcript: %w", err)
	}
	return combined, nil
}

func (t *implTranscriber) path(seq int) string {
	return filepath.Join(t.cfg.Dir, video.ChunkName(seq)+".txt")
}
