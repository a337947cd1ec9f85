package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

func TestNewJob(t *testing.T) {
	job := NewJob("inspection.pdf", "thermal.pdf", []byte("insp"), []byte("therm"), true)

	if job.Status != StatusQueued {
		t.Errorf("status = %q, want %q", job.Status, StatusQueued)
	}
	if len(job.ID) != 26 {
		t.Errorf("job ID %q: len %d, want 26", job.ID, len(job.ID))
	}
	insp, therm := job.Documents()
	if string(insp) != "insp" || string(therm) != "therm" {
		t.Errorf("documents = %q/%q", insp, therm)
	}
}

func TestJob_SetResultDropsUploads(t *testing.T) {
	job := NewJob("i.pdf", "t.pdf", []byte("insp"), []byte("therm"), false)
	job.SetResult(&ReportResult{Merged: &report.Merged{}, Narrative: "report text"})

	insp, therm := job.Documents()
	if insp != nil || therm != nil {
		t.Error("raw uploads must be released once a result is stored")
	}
	if job.Result() == nil || job.Result().Narrative != "report text" {
		t.Errorf("result = %+v", job.Result())
	}
}

func TestJob_SnapshotCopiesErrors(t *testing.T) {
	job := NewJob("i.pdf", "t.pdf", nil, nil, true)
	job.AddError("thermal: no text could be extracted")

	snap := job.Snapshot()
	if len(snap.Errors) != 1 || !strings.Contains(snap.Errors[0], "thermal") {
		t.Fatalf("snapshot errors = %v", snap.Errors)
	}

	// Mutating the snapshot must not reach the job.
	snap.Errors[0] = "mutated"
	if got := job.Snapshot().Errors[0]; got == "mutated" {
		t.Error("snapshot shares its error slice with the job")
	}
}

func TestJobStore_PutGetCleanup(t *testing.T) {
	store := NewJobStore(time.Millisecond)
	job := NewJob("i.pdf", "t.pdf", nil, nil, true)
	store.Put(job)

	if store.Get(job.ID) != job {
		t.Fatal("Get did not return the stored job")
	}
	if store.Get("nope") != nil {
		t.Error("Get of unknown ID must return nil")
	}

	time.Sleep(5 * time.Millisecond)
	store.Cleanup()
	if store.Get(job.ID) != nil {
		t.Error("expired job survived cleanup")
	}
}

func TestContentHashHex(t *testing.T) {
	h1 := ContentHashHex([]byte("same"))
	h2 := ContentHashHex([]byte("same"))
	h3 := ContentHashHex([]byte("different"))

	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if h1 == h3 {
		t.Error("distinct content must hash differently")
	}
}

func TestGenerateULID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("ULID %q: len %d, want 26", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ULID %q", id)
		}
		seen[id] = true
	}
}

func TestBackoff_BoundedWithJitter(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("attempt %d: backoff %v below 1s", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v above cap+jitter", attempt, d)
		}
	}
}
