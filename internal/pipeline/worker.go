package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/extractor"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/merge"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/narrative"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/structurer"
)

// Worker processes a single report generation job.
type Worker struct {
	gemini    *narrative.Client
	log       *slog.Logger
	structCfg structurer.Config
	mergeCfg  merge.Config
}

func NewWorker(gemini *narrative.Client, log *slog.Logger, structCfg structurer.Config, mergeCfg merge.Config) *Worker {
	return &Worker{
		gemini:    gemini,
		log:       log,
		structCfg: structCfg,
		mergeCfg:  mergeCfg,
	}
}

// Process runs the full generation pipeline for a job. Only a failed
// inspection extraction or an exhausted LLM retry loop can fail the job;
// everything between degrades.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "inspection", job.InspectionFile, "thermal", job.ThermalFile)

	// Phase 1: Extract both documents in parallel.
	job.SetStatus(StatusExtracting, "extracting")
	inspData, thermData := job.Documents()

	var inspText, thermText string
	var g errgroup.Group
	g.Go(func() error {
		ex, err := extractor.ForFile(job.InspectionFile)
		if err != nil {
			return fmt.Errorf("inspection: %w", err)
		}
		inspText, err = ex.Extract(bytes.NewReader(inspData), job.InspectionFile)
		if err != nil {
			return fmt.Errorf("inspection: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// A dead thermal document downgrades the report instead of
		// failing the job.
		ex, err := extractor.ForFile(job.ThermalFile)
		if err != nil {
			log.Warn("thermal document unsupported", "error", err)
			job.AddError(fmt.Sprintf("thermal: %s", err))
			return nil
		}
		text, err := ex.Extract(bytes.NewReader(thermData), job.ThermalFile)
		if err != nil {
			log.Warn("thermal extraction failed", "error", err)
			job.AddError(fmt.Sprintf("thermal: %s", err))
			return nil
		}
		thermText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetContentHash(ContentHashHex([]byte(inspText + thermText)))

	// Phase 2: Structure.
	job.SetStatus(StatusStructuring, "structuring")
	insp := structurer.StructureInspection(inspText, w.structCfg)
	therm := structurer.StructureThermal(thermText)
	log.Info("structured documents", "areas", len(insp.Areas), "readings", len(therm.Readings))

	// Phase 3: Merge.
	job.SetStatus(StatusMerging, "merging")
	merged := merge.Merge(insp, therm, w.mergeCfg)
	for _, c := range merged.Conflicts {
		log.Warn("data conflict", "type", c.Type, "detail", c.Detail)
	}
	formatted := merge.FormatForLLM(merged)

	// Phase 4: Generate the narrative with retries.
	job.SetStatus(StatusGenerating, "generating")
	var res *narrative.Result
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		res, lastErr = w.gemini.GenerateDDR(ctx, formatted, job.Validate)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable generation error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			job.AddError(ctx.Err().Error())
			job.SetStatus(StatusFailed, "generating")
			return
		}
	}
	if res == nil {
		log.Error("generation failed", "error", lastErr)
		job.AddError(lastErr.Error())
		job.SetStatus(StatusFailed, "generating")
		return
	}

	job.SetResult(&ReportResult{
		Merged:        merged,
		FormattedData: formatted,
		Narrative:     res.Report,
		Validation:    res.Validation,
		Metadata:      res.Metadata,
		AreasFound:    len(merged.Observations),
		ReadingsFound: len(therm.Readings),
	})

	if lastErr != nil {
		// The report exists but the validation pass did not finish.
		log.Warn("validation pass failed", "error", lastErr)
		job.AddError(lastErr.Error())
		job.SetStatus(StatusPartial, "done")
		return
	}
	log.Info("report generated",
		"areas", len(merged.Observations),
		"conflicts", len(merged.Conflicts),
		"output_chars", res.Metadata.OutputChars)
	job.SetStatus(StatusCompleted, "done")
}
