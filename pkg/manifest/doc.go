// Package manifest turns an evaluated document tree into an ordered set of
// manifests and renders them as YAML.
//
// [Normalize] decides whether the root value is a list of documents or a
// single document, and [DocumentSet.Render] writes the result: a single
// document is written bare, while every document of a list is preceded by a
// "---" separator, including the first.
package manifest
