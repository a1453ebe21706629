// Package pipeline connects script evaluation, normalization, rendering and
// server-side apply into the translate and apply runs.
//
// A run evaluates the script once, normalizes the result into a
// [manifest.DocumentSet], then either renders it or applies each document in
// order. Documents whose type the cluster does not serve are skipped with a
// warning. Any other failure stops the run; documents applied before the
// failure stay applied.
package pipeline
