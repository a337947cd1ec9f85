package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/narrative"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

// JobStatus represents the state of a report generation job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusExtracting  JobStatus = "extracting"
	StatusStructuring JobStatus = "structuring"
	StatusMerging     JobStatus = "merging"
	StatusGenerating  JobStatus = "generating"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
)

// ReportResult holds everything a finished job produced.
type ReportResult struct {
	Merged        *report.Merged     `json:"merged_data"`
	FormattedData string             `json:"formatted_data"`
	Narrative     string             `json:"report"`
	Validation    string             `json:"validation,omitempty"`
	Metadata      narrative.Metadata `json:"metadata"`
	AreasFound    int                `json:"areas_found"`
	ReadingsFound int                `json:"readings_found"`
}

// Job tracks the state of a single DDR generation.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	InspectionFile string `json:"inspection_file"`
	ThermalFile    string `json:"thermal_file"`
	Validate       bool   `json:"validate"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	inspectionData []byte
	thermalData    []byte
	result         *ReportResult
	errors         []string
}

// NewJob builds a queued job around the two uploaded documents.
func NewJob(inspectionFile, thermalFile string, inspectionData, thermalData []byte, validate bool) *Job {
	now := time.Now()
	return &Job{
		ID:             generateULID(),
		Status:         StatusQueued,
		Phase:          "queued",
		InspectionFile: inspectionFile,
		ThermalFile:    thermalFile,
		Validate:       validate,
		CreatedAt:      now,
		UpdatedAt:      now,
		inspectionData: inspectionData,
		thermalData:    thermalData,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the extracted document texts.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// Documents returns the raw uploaded bytes.
func (j *Job) Documents() (inspection, thermal []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inspectionData, j.thermalData
}

// SetResult stores the finished report and drops the raw uploads.
func (j *Job) SetResult(res *ReportResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.inspectionData = nil
	j.thermalData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the finished report, or nil while the job is in flight.
func (j *Job) Result() *ReportResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID             string    `json:"job_id"`
	Status         JobStatus `json:"status"`
	Phase          string    `json:"phase"`
	InspectionFile string    `json:"inspection_file"`
	ThermalFile    string    `json:"thermal_file"`
	Validate       bool      `json:"validate"`
	Errors         []string  `json:"errors"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return JobSnapshot{
		ID:             j.ID,
		Status:         j.Status,
		Phase:          j.Phase,
		InspectionFile: j.InspectionFile,
		ThermalFile:    j.ThermalFile,
		Validate:       j.Validate,
		Errors:         errs,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
