// Package vdom provides the virtual DOM data model and diff engine for
// Vellum.
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Nodes are built fresh on every
// render pass and never mutated afterwards; Equal performs deep structural
// comparison over tag, props (unordered), and children (ordered).
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P("Content"),
//	    OnClick(handler),
//	)
//
// # Diffing
//
// Diff compares two trees and returns an ordered Patch sequence. Child
// lists are reconciled positionally with an LCS-style sequence matcher;
// a node's Key is carried as data but does not reorder matches.
package vdom
