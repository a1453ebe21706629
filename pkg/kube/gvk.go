package kube

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// GroupVersionKindOf returns the group/version/kind declared by doc. The
// group is empty when apiVersion has no "/".
func GroupVersionKindOf(doc document.Value) (schema.GroupVersionKind, error) {
	kind, err := doc.StringField("kind")
	if err != nil {
		return schema.GroupVersionKind{}, err
	}

	apiVersion, err := doc.StringField("apiVersion")
	if err != nil {
		return schema.GroupVersionKind{}, err
	}

	gv, err := schema.ParseGroupVersion(apiVersion)
	if err != nil {
		return schema.GroupVersionKind{}, fmt.Errorf("%w: apiVersion: %w", kluarserrors.ErrShape, err)
	}

	return gv.WithKind(kind), nil
}

// ResourceName returns metadata.name, falling back to metadata.generateName.
// A document with neither yields an empty name.
func ResourceName(doc document.Value) (string, error) {
	name, ok, err := doc.OptionalStringField("metadata", "name")
	if err != nil || ok {
		return name, err
	}

	name, _, err = doc.OptionalStringField("metadata", "generateName")

	return name, err
}
