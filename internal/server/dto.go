// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import "time"

type convertResponse struct {
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	Status       string `json:"status"`
}

type batchItem struct {
	Filename     string `json:"filename"`
	FileID       string `json:"file_id,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	Status       string `json:"status,omitempty"`
	Error        string `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type bulkRequest struct {
	FileIDs []string `json:"file_ids"`
}

type statusResponse struct {
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	OriginalName string `json:"original_name"`
}

type fileInfo struct {
	FileID       string    `json:"file_id"`
	OriginalName string    `json:"original_name"`
	Direction    string    `json:"direction"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

type filesResponse struct {
	Files []fileInfo `json:"files"`
}

type healthResponse struct {
	Status      string `json:"status"`
	EngineFound bool   `json:"engine_found"`
	EnginePath  string `json:"engine_path,omitempty"`
}

// errorResponse is the error body: a human-readable message plus a stable
// machine code.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
