package kube

// Target selects where a document is applied.
type Target struct {
	// Namespace is empty for cluster-scoped targets.
	Namespace string
	Scope     Scope
}

// ResolveTarget picks the namespace for a document of the given scope. The
// document's own metadata.namespace wins, then the namespace given on the
// command line, then the client's default namespace. Cluster-scoped
// resources ignore all three.
func ResolveTarget(scope Scope, docNamespace, flagNamespace, defaultNamespace string) Target {
	if scope == ScopeCluster {
		return Target{Scope: ScopeCluster}
	}

	ns := docNamespace
	if ns == "" {
		ns = flagNamespace
	}

	if ns == "" {
		ns = defaultNamespace
	}

	return Target{Scope: ScopeNamespaced, Namespace: ns}
}

func (t Target) String() string {
	if t.Scope == ScopeCluster {
		return "cluster"
	}

	return "namespace/" + t.Namespace
}
