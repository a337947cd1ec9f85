package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/config"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/merge"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/narrative"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/structurer"
)

// Orchestrator manages the report generation pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	gemini *narrative.Client
	log    *slog.Logger
	cfg    config.Config

	structCfg structurer.Config
	mergeCfg  merge.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline around a Gemini client.
func NewOrchestrator(cfg config.Config, gemini *narrative.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		gemini: gemini,
		log:    log,
		cfg:    cfg,
		structCfg: structurer.Config{
			MaxAreaDescChars:   cfg.MaxAreaDescChars,
			MaxRawContentChars: cfg.MaxRawContentChars,
			MaxChecklistChars:  cfg.MaxChecklistChars,
			SiteFallbackChars:  cfg.SiteFallbackChars,
			DegradedRawChars:   cfg.DegradedRawChars,
		},
		mergeCfg: merge.Config{
			ThermalStride:      cfg.ThermalImagesPerArea,
			MaxRawContentChars: cfg.MaxRawContentChars,
		},
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.gemini, o.log, o.structCfg, o.mergeCfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Gemini returns the LLM client for direct use by API handlers.
func (o *Orchestrator) Gemini() *narrative.Client {
	return o.gemini
}
