package kube

import (
	"context"
	"fmt"

	slogcontext "github.com/veqryn/slog-context"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/restmapper"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// Scope is where a resource type lives.
type Scope int

const (
	ScopeCluster Scope = iota
	ScopeNamespaced
)

func (s Scope) String() string {
	if s == ScopeNamespaced {
		return "Namespaced"
	}

	return "Cluster"
}

// ResourceDescriptor describes how the cluster serves one kind.
type ResourceDescriptor struct {
	GroupVersionKind schema.GroupVersionKind
	Resource         schema.GroupVersionResource
	Scope            Scope
}

// Snapshot is a point-in-time, read-only catalog of the resource types a
// cluster serves.
type Snapshot struct {
	mapper meta.RESTMapper
}

// FetchSnapshot queries discovery once and builds a [Snapshot]. If only some
// API groups fail discovery, the failure is logged as a warning and the
// snapshot is built from the groups that responded.
func FetchSnapshot(ctx context.Context, dc discovery.DiscoveryInterface) (*Snapshot, error) {
	groups, resources, err := dc.ServerGroupsAndResources()
	if err != nil {
		if !discovery.IsGroupDiscoveryFailedError(err) || groups == nil || resources == nil {
			return nil, fmt.Errorf("%w: discovery: %w", kluarserrors.ErrTransport, err)
		}

		slogcontext.FromCtx(ctx).Warn("some API groups could not be discovered", "error", err)
	}

	return NewSnapshot(groupResources(groups, resources)), nil
}

// groupResources pairs each group version with the resources discovered
// for it. Versions that failed discovery are left empty.
func groupResources(groups []*metav1.APIGroup, lists []*metav1.APIResourceList) []*restmapper.APIGroupResources {
	byGroupVersion := make(map[string]*metav1.APIResourceList, len(lists))
	for _, l := range lists {
		byGroupVersion[l.GroupVersion] = l
	}

	result := make([]*restmapper.APIGroupResources, 0, len(groups))

	for _, g := range groups {
		gr := &restmapper.APIGroupResources{
			Group:              *g,
			VersionedResources: map[string][]metav1.APIResource{},
		}

		for _, v := range g.Versions {
			if l, ok := byGroupVersion[v.GroupVersion]; ok {
				gr.VersionedResources[v.Version] = l.APIResources
			}
		}

		result = append(result, gr)
	}

	return result
}

// NewSnapshot builds a [Snapshot] from already-fetched discovery data.
func NewSnapshot(groups []*restmapper.APIGroupResources) *Snapshot {
	return &Snapshot{mapper: restmapper.NewDiscoveryRESTMapper(groups)}
}

// Resolve looks up gvk. An unknown group, version or kind yields an error
// wrapping [kluarserrors.ErrUnresolvedType].
func (s *Snapshot) Resolve(gvk schema.GroupVersionKind) (*ResourceDescriptor, error) {
	mapping, err := s.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kluarserrors.ErrUnresolvedType, gvk, err)
	}

	scope := ScopeCluster
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		scope = ScopeNamespaced
	}

	return &ResourceDescriptor{
		GroupVersionKind: mapping.GroupVersionKind,
		Resource:         mapping.Resource,
		Scope:            scope,
	}, nil
}

// ResolveDocument reads doc's apiVersion and kind and resolves them. A
// missing or non-string field yields an error wrapping
// [kluarserrors.ErrShape].
func (s *Snapshot) ResolveDocument(doc document.Value) (*ResourceDescriptor, error) {
	gvk, err := GroupVersionKindOf(doc)
	if err != nil {
		return nil, err
	}

	return s.Resolve(gvk)
}
