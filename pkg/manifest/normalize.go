package manifest

import (
	"github.com/MacroPower/kluars/pkg/document"
)

// DocumentSet is the ordered result of normalizing one evaluated root value.
type DocumentSet struct {
	docs []document.Value
	list bool
}

// Normalize classifies root. If root has a mapping at 1-based index 1, it is
// treated as a list: indices 1, 2, ... are collected in order until the
// first missing index, even if higher indices exist. Otherwise root itself
// is the only document.
//
// An empty table is an empty list and yields no documents. A root whose
// first entry is a scalar is a single document, not a one-element list.
// Documents are not validated here.
func Normalize(root document.Value) *DocumentSet {
	if isContainer(root) && root.Len() == 0 {
		return &DocumentSet{list: true}
	}

	first, ok := root.Index(1)
	if !ok || first.Kind() != document.KindMapping {
		return &DocumentSet{docs: []document.Value{root}}
	}

	set := &DocumentSet{list: true}

	for i := 1; ; i++ {
		doc, ok := root.Index(i)
		if !ok {
			break
		}

		set.docs = append(set.docs, doc)
	}

	return set
}

// IsList reports whether the root was classified as a list of documents.
func (s *DocumentSet) IsList() bool {
	return s.list
}

// Len returns the number of documents.
func (s *DocumentSet) Len() int {
	return len(s.docs)
}

// Documents returns the documents in order. The returned slice must not be
// modified.
func (s *DocumentSet) Documents() []document.Value {
	return s.docs
}

func isContainer(v document.Value) bool {
	return v.Kind() == document.KindList || v.Kind() == document.KindMapping
}
