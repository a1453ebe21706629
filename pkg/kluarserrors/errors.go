package kluarserrors

import "errors"

var (
	// ErrConfiguration indicates invalid command line input, such as a
	// malformed KEY=VALUE argument or a missing script path.
	ErrConfiguration = errors.New("configuration")

	// ErrEvaluation indicates the script failed to load or run, or returned
	// a value that cannot be represented as a document tree.
	ErrEvaluation = errors.New("evaluation")

	// ErrShape indicates a document lacks a field, or has a field of the
	// wrong type, that a pipeline stage requires.
	ErrShape = errors.New("document shape")

	// ErrUnresolvedType indicates a document's group/version/kind is not
	// served by the cluster.
	ErrUnresolvedType = errors.New("unresolved type")

	// ErrTransport indicates a failure talking to the cluster.
	ErrTransport = errors.New("transport")

	// ErrWrite indicates an error occurred while writing output.
	ErrWrite = errors.New("write")

	// ErrYAMLMarshal indicates an error occurred while marshaling YAML.
	ErrYAMLMarshal = errors.New("marshal YAML")
)
