// Package metadata computes content statistics for the job report.
package metadata

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/tubedigest/internal/domain"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// TextStats describes one body of text.
type TextStats struct {
	Characters         int `json:"characters"`
	CharactersNoSpaces int `json:"characters_no_spaces"`
	Words              int `json:"words"`
	Sentences          int `json:"sentences"`
}

func (s *TextStats) add(o TextStats) {
	s.Characters += o.Characters
	s.CharactersNoSpaces += o.CharactersNoSpaces
	s.Words += o.Words
	s.Sentences += o.Sentences
}

// AudioStats describes one audio file.
type AudioStats struct {
	Filename          string  `json:"filename"`
	SizeBytes         int64   `json:"size_bytes"`
	SizeMB            float64 `json:"size_mb"`
	DurationSeconds   float64 `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
}

// TranscriptStats is TextStats for one transcript file.
type TranscriptStats struct {
	Seq      int    `json:"seq"`
	Filename string `json:"filename"`
	TextStats
}

// AudioTotals aggregates all chunks.
type AudioTotals struct {
	ChunkCount        int     `json:"chunk_count"`
	SizeBytes         int64   `json:"size_bytes"`
	SizeMB            float64 `json:"size_mb"`
	AverageChunkMB    float64 `json:"average_chunk_mb"`
	DurationSeconds   float64 `json:"duration_seconds"`
	DurationFormatted string  `json:"duration_formatted"`
}

// TranscriptTotals aggregates all transcripts.
type TranscriptTotals struct {
	ChunkCount int `json:"chunk_count"`
	TextStats
	AverageWords float64 `json:"average_words"`
}

// Content is the metadata section of the cost report.
type Content struct {
	Source      *AudioStats       `json:"source,omitempty"`
	Chunks      []AudioStats      `json:"chunks"`
	AudioTotals AudioTotals       `json:"audio_totals"`
	Transcripts []TranscriptStats `json:"transcripts"`
	TextTotals  TranscriptTotals  `json:"transcript_totals"`
}

// Text computes statistics for text.
func Text(text string) TextStats {
	return TextStats{
		Characters:         len([]rune(text)),
		CharactersNoSpaces: len([]rune(strings.ReplaceAll(text, " ", ""))),
		Words:              len(strings.Fields(text)),
		Sentences:          len(sentenceEnd.FindAllString(text, -1)),
	}
}

// Audio describes a file of size bytes lasting seconds.
func Audio(path string, size int64, seconds float64) AudioStats {
	return AudioStats{
		Filename:          filepath.Base(path),
		SizeBytes:         size,
		SizeMB:            toMB(size),
		DurationSeconds:   seconds,
		DurationFormatted: FormatDuration(seconds),
	}
}

// Collect builds the content metadata for a job. source may be nil when the
// original audio was not probed.
func Collect(source *AudioStats, chunks []domain.Chunk, transcripts []domain.Transcript) Content {
	c := Content{
		Source:      source,
		Chunks:      make([]AudioStats, 0, len(chunks)),
		Transcripts: make([]TranscriptStats, 0, len(transcripts)),
	}

	for _, ch := range chunks {
		st := Audio(ch.Path, ch.Size, ch.Duration)
		c.Chunks = append(c.Chunks, st)
		c.AudioTotals.ChunkCount++
		c.AudioTotals.SizeBytes += st.SizeBytes
		c.AudioTotals.DurationSeconds += st.DurationSeconds
	}
	c.AudioTotals.SizeMB = toMB(c.AudioTotals.SizeBytes)
	c.AudioTotals.DurationFormatted = FormatDuration(c.AudioTotals.DurationSeconds)
	if c.AudioTotals.ChunkCount > 0 {
		c.AudioTotals.AverageChunkMB = c.AudioTotals.SizeMB / float64(c.AudioTotals.ChunkCount)
	}

	for _, t := range transcripts {
		st := TranscriptStats{Seq: t.Seq, Filename: filepath.Base(t.Path), TextStats: Text(t.Text)}
		c.Transcripts = append(c.Transcripts, st)
		c.TextTotals.ChunkCount++
		c.TextTotals.add(st.TextStats)
	}
	if c.TextTotals.ChunkCount > 0 {
		c.TextTotals.AverageWords = float64(c.TextTotals.Words) / float64(c.TextTotals.ChunkCount)
	}

	return c
}

// FormatDuration renders seconds as HH:MM:SS, or MM:SS under an hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func toMB(b int64) float64 {
	return float64(b) / (1024 * 1024)
}
