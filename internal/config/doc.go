// Package config loads and validates vellum.json.
//
// A missing file is not an error: Load falls back to the built-in defaults
// so a bare binary runs without any configuration on disk. A present but
// malformed or out-of-range file is always an error.
package config
