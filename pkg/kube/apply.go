package kube

import (
	"context"
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// FieldManager is the field manager identity used for every apply.
const FieldManager = "kluars"

// Applier issues server-side apply patches through a dynamic client.
type Applier struct {
	client dynamic.Interface
	dryRun bool
}

// ApplierOpt configures an [Applier].
type ApplierOpt func(*Applier)

// WithDryRun makes the server validate and persist nothing.
func WithDryRun(dryRun bool) ApplierOpt {
	return func(a *Applier) {
		a.dryRun = dryRun
	}
}

// NewApplier creates a new [Applier].
func NewApplier(client dynamic.Interface, opts ...ApplierOpt) *Applier {
	a := &Applier{client: client}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Options returns the apply options sent with every patch. Force is always
// set, so fields owned by other managers are taken over.
func (a *Applier) Options() metav1.ApplyOptions {
	opts := metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	}

	if a.dryRun {
		opts.DryRun = []string{metav1.DryRunAll}
	}

	return opts
}

// Apply sends doc to the resource described by desc at target. The name is
// taken from metadata.name or metadata.generateName and is not validated.
func (a *Applier) Apply(
	ctx context.Context,
	doc document.Value,
	desc *ResourceDescriptor,
	target Target,
) (*unstructured.Unstructured, error) {
	name, err := ResourceName(doc)
	if err != nil {
		return nil, err
	}

	obj, err := ToUnstructured(doc)
	if err != nil {
		return nil, err
	}

	nri := a.client.Resource(desc.Resource)

	var ri dynamic.ResourceInterface = nri
	if target.Scope == ScopeNamespaced {
		ri = nri.Namespace(target.Namespace)
	}

	applied, err := ri.Apply(ctx, name, obj, a.Options())
	if err != nil {
		return nil, fmt.Errorf("%w: apply %s %q in %s: %w",
			kluarserrors.ErrTransport, desc.GroupVersionKind.Kind, name, target, err)
	}

	return applied, nil
}

// ToUnstructured converts doc to its wire form by way of JSON, so integral
// numbers arrive as integers.
func ToUnstructured(doc document.Value) (*unstructured.Unstructured, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode JSON: %w", kluarserrors.ErrShape, err)
	}

	obj := &unstructured.Unstructured{}
	if err := obj.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: decode JSON: %w", kluarserrors.ErrShape, err)
	}

	return obj, nil
}
