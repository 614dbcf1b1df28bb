// Package errors provides structured, coded errors for Vellum.
//
// Each error carries a stable code (e.g., "E001"), a category, a short
// message, and an optional wrapped cause. Codes map to registered
// templates so callers can match on errors.As plus the code without
// string comparison on messages.
//
// # Error Categories
//
//   - render: failures while serializing a virtual node tree
//   - lifecycle: contained hook listener failures
//   - cache: render-cache bookkeeping problems
//   - validation: construction-time input errors (bad tag names)
//   - config: configuration file problems
package errors
