// Package cloudconfig executes the directives of a cloud-config document.
//
// # Core Types
//
// Directive is one top-level key of the document and its payload.
// Registry maps the closed set of directive kinds to their handlers.
// Executor orders directives by the configured priority list and runs each
// handler inside a failure boundary: a failing or panicking handler is
// logged and the next directive still runs.
// Session carries values from one directive to a later one within a run.
//
// # Ordering
//
// A directive's priority is its index in the configured list, or
// DefaultOrderValue when it is not listed. Directives with the same
// priority keep document order.
package cloudconfig
