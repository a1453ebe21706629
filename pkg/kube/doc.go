// Package kube resolves documents against a live cluster and applies them.
//
// A [Snapshot] is taken once per run from the cluster's discovery endpoint
// and is never refreshed. [Snapshot.ResolveDocument] maps a document's
// apiVersion and kind to a [ResourceDescriptor]; [ResolveTarget] chooses the
// namespace the document is applied in; and [Applier.Apply] issues a forced
// server-side apply patch.
package kube
