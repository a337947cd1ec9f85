package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/extractor"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/output"
	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/pipeline"
)

// handleGenerate accepts the inspection and thermal documents as a multipart
// upload and queues a generation job.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// Two documents plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*2+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	inspName, inspData, err := s.readUpload(r, "inspection")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	thermName, thermData, err := s.readUpload(r, "thermal")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	validate := true
	if v := r.FormValue("validate"); v == "false" {
		validate = false
	}

	job := pipeline.NewJob(inspName, thermName, inspData, thermData, validate)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/reports/%s/status", job.ID),
	})
}

func (s *Server) readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s document is required: %w", field, err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extractor.IsSupportedExtension(filename) {
		return "", nil, fmt.Errorf("unsupported %s file type: %s", field, filepath.Ext(filename))
	}

	data, err := readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		return "", nil, fmt.Errorf("%s document: %w", field, err)
	}
	return filename, data, nil
}

func readLimited(f multipart.File, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", max)
	}
	return data, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleResult returns the structured data, narrative, and metadata of a
// finished job.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id": job.ID,
		"status": job.Status,
		"result": res,
	})
}

// handleDownload serves the finished report as a markdown attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	md := output.Markdown(res.Narrative, time.Now())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(output.DefaultPath("", time.Now()))))
	w.Write([]byte(md))
}

// handlePreview renders the finished report as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.finishedJob(w, r)
	if !ok {
		return
	}
	html, err := output.RenderHTML(output.Markdown(res.Narrative, time.Now()))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// finishedJob resolves a job ID to a job carrying a result, writing the
// error response itself when it cannot.
func (s *Server) finishedJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, *pipeline.ReportResult, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, nil, false
	}
	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			jsonError(w, "job failed: "+strings.Join(snap.Errors, "; "), http.StatusConflict)
		} else {
			jsonError(w, "report not ready", http.StatusConflict)
		}
		return nil, nil, false
	}
	return job, res, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
