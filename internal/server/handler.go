// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/doc-converter/internal/archive"
	"github.com/pdiddy/doc-converter/internal/convert"
	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/internal/store"
	"github.com/pdiddy/doc-converter/pkg/types"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypeZip  = "application/zip"

	bulkArchiveName = "converted_files.zip"
)

// handleConvert returns the upload handler for one conversion direction.
func (s *Server) handleConvert(direction types.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "NO_FILE", "no file provided")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeError(w, http.StatusBadRequest, "NO_FILE", "no file selected")
			return
		}

		artifact, err := s.svc.ConvertUpload(r.Context(), header.Filename, file, direction)
		if err != nil {
			writeConvertError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, convertResponse{
			FileID:       artifact.ID,
			OriginalName: artifact.DisplayName,
			Status:       string(types.StatusCompleted),
		})
	}
}

// handleBatch converts several uploads in one request. Failures are
// reported per file; one bad file never affects its siblings.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "NO_FILE", "no files provided")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "NO_FILE", "no files provided")
		return
	}

	direction, err := types.ParseDirection(r.FormValue("direction"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DIRECTION", err.Error())
		return
	}

	resp := batchResponse{Results: make([]batchItem, 0, len(headers))}
	for _, h := range headers {
		item := batchItem{Filename: h.Filename}

		f, err := h.Open()
		if err != nil {
			item.Error = "unreadable upload"
			resp.Results = append(resp.Results, item)
			continue
		}
		artifact, err := s.svc.ConvertUpload(r.Context(), h.Filename, f, direction)
		f.Close()
		if err != nil {
			item.Error = err.Error()
		} else {
			item.FileID = artifact.ID
			item.OriginalName = artifact.DisplayName
			item.Status = string(types.StatusCompleted)
		}
		resp.Results = append(resp.Results, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.store.Get(r.Context(), r.PathValue("file_id"))
	if err != nil {
		writeConvertError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(artifact.Direction))
	w.Header().Set("Content-Disposition", attachment(artifact.DisplayName))
	http.ServeFile(w, r, artifact.Path)
}

// handleBulk streams a ZIP of the requested artifacts. Unknown identifiers
// are omitted (best effort, matching single-file independence elsewhere);
// the request fails only when nothing resolves.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	ids, err := parseBulkIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "NO_FILES", "no files specified")
		return
	}

	var entries []archive.Entry
	for _, id := range ids {
		artifact, err := s.store.Get(r.Context(), id)
		if err != nil {
			continue
		}
		entries = append(entries, archive.Entry{Path: artifact.Path, Name: artifact.DisplayName})
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "none of the requested files were found")
		return
	}

	w.Header().Set("Content-Type", contentTypeZip)
	w.Header().Set("Content-Disposition", attachment(bulkArchiveName))
	if _, err := archive.WriteZip(w, entries); err != nil {
		// Headers are gone; all we can do is log and drop the connection.
		s.log.Error("bulk archive write failed", "error", err)
	}
}

// parseBulkIDs accepts either a JSON body {"file_ids": [...]} or a form
// field file_ids holding a JSON-encoded array.
func parseBulkIDs(r *http.Request) ([]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body bulkRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body")
		}
		return body.FileIDs, nil
	}

	raw := r.FormValue("file_ids")
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("file_ids must be a JSON array")
	}
	return ids, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.store.Get(r.Context(), r.PathValue("file_id"))
	if err != nil {
		writeConvertError(w, err)
		return
	}

	// Conversions are synchronous: an identifier only exists once its
	// conversion completed.
	writeJSON(w, http.StatusOK, statusResponse{
		Status:       string(types.StatusCompleted),
		Progress:     100,
		OriginalName: artifact.DisplayName,
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	artifacts, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
		return
	}

	resp := filesResponse{Files: make([]fileInfo, 0, len(artifacts))}
	for _, a := range artifacts {
		resp.Files = append(resp.Files, fileInfo{
			FileID:       a.ID,
			OriginalName: a.DisplayName,
			Direction:    a.Direction.String(),
			Size:         a.Size,
			CreatedAt:    a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	path, err := s.eng.Probe()
	resp := healthResponse{Status: "healthy", EngineFound: err == nil, EnginePath: path}
	writeJSON(w, http.StatusOK, resp)
}

// writeConvertError maps pipeline errors onto HTTP status codes.
func writeConvertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, convert.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
	case errors.Is(err, engine.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ENGINE_UNAVAILABLE", err.Error())
	case errors.Is(err, engine.ErrFailed):
		writeError(w, http.StatusInternalServerError, "CONVERSION_FAILED", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func contentTypeFor(d types.Direction) string {
	if d == types.PDFToDocx {
		return contentTypeDocx
	}
	return contentTypePDF
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
