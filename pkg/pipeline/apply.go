package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	slogcontext "github.com/veqryn/slog-context"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/MacroPower/kluars/pkg/document"
	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/kube"
	"github.com/MacroPower/kluars/pkg/manifest"
	"github.com/MacroPower/kluars/pkg/script"
	"github.com/MacroPower/kluars/pkg/tracing"
)

var (
	_ Resolver = (*kube.Snapshot)(nil)
	_ Executor = (*kube.Applier)(nil)
)

// Resolver maps a document to the resource type that serves it.
type Resolver interface {
	ResolveDocument(doc document.Value) (*kube.ResourceDescriptor, error)
}

// Executor applies one resolved document.
type Executor interface {
	Apply(
		ctx context.Context,
		doc document.Value,
		desc *kube.ResourceDescriptor,
		target kube.Target,
	) (*unstructured.Unstructured, error)
}

// Outcome reports what happened to one document.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeSkipped
)

func (o Outcome) String() string {
	if o == OutcomeSkipped {
		return "skipped"
	}

	return "applied"
}

// Summary counts the documents handled by [Runner.ApplyAll].
type Summary struct {
	Applied int
	Skipped int
}

// Runner applies documents one at a time.
type Runner struct {
	resolver         Resolver
	executor         Executor
	tracer           tracing.Tracer
	namespace        string
	defaultNamespace string
}

// RunnerOpt configures a [Runner].
type RunnerOpt func(*Runner)

// WithNamespace sets the namespace given on the command line. It is used
// for namespaced documents that do not set metadata.namespace.
func WithNamespace(ns string) RunnerOpt {
	return func(r *Runner) {
		r.namespace = ns
	}
}

// WithDefaultNamespace sets the namespace used when neither the document nor
// the command line names one.
func WithDefaultNamespace(ns string) RunnerOpt {
	return func(r *Runner) {
		r.defaultNamespace = ns
	}
}

// WithTracer sets the tracer used for run timing. By default spans are
// logged to the context logger.
func WithTracer(t tracing.Tracer) RunnerOpt {
	return func(r *Runner) {
		r.tracer = t
	}
}

// NewRunner creates a new [Runner].
func NewRunner(resolver Resolver, executor Executor, opts ...RunnerOpt) *Runner {
	r := &Runner{
		resolver:         resolver,
		executor:         executor,
		defaultNamespace: "default",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ApplyDocument resolves and applies a single document. index is the
// document's 1-based position and is only used for logging. A document of
// an unknown type is logged and reported as [OutcomeSkipped] with no error.
func (r *Runner) ApplyDocument(ctx context.Context, index int, doc document.Value) (Outcome, error) {
	logger := slogcontext.FromCtx(ctx).With("document", index)

	if gvk, err := kube.GroupVersionKindOf(doc); err == nil {
		logger = logger.With("apiVersion", gvk.GroupVersion().String(), "kind", gvk.Kind)
	}

	desc, err := r.resolver.ResolveDocument(doc)
	if errors.Is(err, kluarserrors.ErrUnresolvedType) {
		logger.Warn("skipping document with unknown resource type", "error", err)

		return OutcomeSkipped, nil
	}

	if err != nil {
		return OutcomeApplied, fmt.Errorf("document %d: %w", index, err)
	}

	docNamespace, _, err := doc.OptionalStringField("metadata", "namespace")
	if err != nil {
		return OutcomeApplied, fmt.Errorf("document %d: %w", index, err)
	}

	target := kube.ResolveTarget(desc.Scope, docNamespace, r.namespace, r.defaultNamespace)
	logger = logger.With("target", target.String())

	name, err := kube.ResourceName(doc)
	if err != nil {
		return OutcomeApplied, fmt.Errorf("document %d: %w", index, err)
	}

	logger = logger.With("name", name)

	if _, err := r.executor.Apply(slogcontext.NewCtx(ctx, logger), doc, desc, target); err != nil {
		return OutcomeApplied, fmt.Errorf("document %d: %w", index, err)
	}

	logger.Info("applied")

	return OutcomeApplied, nil
}

// ApplyAll applies set in order and stops at the first error.
func (r *Runner) ApplyAll(ctx context.Context, set *manifest.DocumentSet) (Summary, error) {
	tracer := r.tracer
	if tracer == nil {
		tracer = tracing.NewLoggingTracer(slogcontext.FromCtx(ctx))
	}

	span := tracer.StartSpan("apply")
	defer span.Finish()

	sum := Summary{}

	for i, doc := range set.Documents() {
		outcome, err := r.ApplyDocument(ctx, i+1, doc)
		if err != nil {
			span.SetBaggageItem("applied", sum.Applied)
			span.SetBaggageItem("skipped", sum.Skipped)

			return sum, err
		}

		switch outcome {
		case OutcomeApplied:
			sum.Applied++
		case OutcomeSkipped:
			sum.Skipped++
		}
	}

	span.SetBaggageItem("applied", sum.Applied)
	span.SetBaggageItem("skipped", sum.Skipped)

	slogcontext.FromCtx(ctx).Debug("apply finished",
		slog.Int("applied", sum.Applied),
		slog.Int("skipped", sum.Skipped),
	)

	return sum, nil
}

// Apply evaluates env and applies every resulting document with r.
func Apply(ctx context.Context, env *script.Environment, r *Runner) (Summary, error) {
	set, err := Load(ctx, env)
	if err != nil {
		return Summary{}, err
	}

	return r.ApplyAll(ctx, set)
}
