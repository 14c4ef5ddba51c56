package processor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/cost"
	"github.com/nguyentantai21042004/tubedigest/internal/domain"
	"github.com/nguyentantai21042004/tubedigest/internal/metadata"
	"github.com/nguyentantai21042004/tubedigest/pkg/fsutil"
)

// ReportFile is the cost and metadata report inside the analysis directory.
const ReportFile = "cost_report.json"

// Status is the outcome recorded in a report.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Report is the cost/metadata record written at the end of a job.
type Report struct {
	RunID       string           `json:"run_id"`
	VideoID     string           `json:"video_id"`
	URL         string           `json:"url"`
	Status      Status           `json:"status"`
	FailedStage domain.Stage     `json:"failed_stage,omitempty"`
	Error       string           `json:"error,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Stages      []StageTiming    `json:"stages"`
	Cost        cost.Report      `json:"cost"`
	Content     metadata.Content `json:"content"`
	Files       Files            `json:"files"`
}

// Files lists the main artifacts of the job.
type Files struct {
	Audio         string `json:"audio,omitempty"`
	FinalAnalysis string `json:"final_analysis,omitempty"`
	FinalDocx     string `json:"final_docx,omitempty"`
}

func (p *implProcessor) buildReport(r *run, status Status, stageErr *domain.StageError) Report {
	report := Report{
		URL:        r.url,
		Status:     status,
		StartedAt:  r.started,
		FinishedAt: time.Now(),
		Stages:     r.state.Timings(),
		Cost:       r.tracker.Report(),
		Files: Files{
			Audio:         r.audioPath,
			FinalAnalysis: r.final.Path,
			FinalDocx:     r.final.DocxPath,
		},
	}
	if r.job != nil {
		report.RunID = r.job.RunID
		report.VideoID = r.job.VideoID
	}
	if stageErr != nil {
		report.FailedStage = stageErr.Stage
		report.Error = stageErr.Err.Error()
	}

	var source *metadata.AudioStats
	if info, err := os.Stat(r.audioPath); err == nil {
		var seconds float64
		for _, c := range r.chunks {
			seconds += c.Duration
		}
		s := metadata.Audio(r.audioPath, info.Size(), seconds)
		source = &s
	}
	report.Content = metadata.Collect(source, r.chunks, r.transcripts)

	return report
}

func writeReport(dir string, report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode cost report: %w", err)
	}

	path := filepath.Join(dir, ReportFile)
	if err := fsutil.WriteAtomic(path, data); err != nil {
		return "", fmt.Errorf("write cost report: %w", err)
	}
	return path, nil
}
