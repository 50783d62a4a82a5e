// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EngineConfig holds settings for the external conversion engine.
type EngineConfig struct {
	// Path pins the engine binary to an explicit location. When empty the
	// engine is discovered from the candidate paths and then $PATH.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Timeout bounds a single conversion call. Zero means no timeout; a
	// hung engine call then blocks its request indefinitely.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// StoreConfig holds settings for the artifact store.
type StoreConfig struct {
	// DataDir is the base directory for stored artifacts (contains
	// converted/ and index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ConvertConfig holds settings for the conversion service.
type ConvertConfig struct {
	EngineConfig `yaml:",inline"`

	// WorkDir is the directory for uploaded input files awaiting
	// conversion. Inputs are removed once their conversion settles.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// Concurrency is the maximum number of parallel engine invocations in
	// a CLI batch run (default 4). The server does not gate concurrency;
	// each request runs its own engine subprocess.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default "localhost:5001").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the size of a single multipart upload
	// (default 64 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
}
