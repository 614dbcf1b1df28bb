// Package vellum is the application runtime tying the pieces together: the
// virtual DOM, the HTML renderer, the component lifecycle and the render
// cache.
//
// An App is an explicit context object. It owns every piece of shared state
// so that two applications in one process never interfere, and it exposes
// the two core flows: RenderHTML (fingerprint, cache lookup, render, store)
// and Update (re-render, diff against the previous tree, broadcast patches).
package vellum
