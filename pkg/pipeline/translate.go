package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/manifest"
	"github.com/MacroPower/kluars/pkg/script"
	"github.com/MacroPower/kluars/pkg/tracing"
)

// Load evaluates env and normalizes the result.
func Load(ctx context.Context, env *script.Environment) (*manifest.DocumentSet, error) {
	span := tracing.NewLoggingTracer(slogcontext.FromCtx(ctx)).StartSpan("evaluate")
	span.SetBaggageItem("script", env.Name())

	defer span.Finish()

	root, err := script.Evaluate(ctx, env)
	if err != nil {
		return nil, err
	}

	set := manifest.Normalize(root)
	span.SetBaggageItem("documents", set.Len())
	span.SetBaggageItem("list", set.IsList())

	return set, nil
}

// Translate evaluates env and writes the rendered manifests to w. Nothing is
// written if evaluation or rendering fails.
func Translate(ctx context.Context, env *script.Environment, w io.Writer) error {
	set, err := Load(ctx, env)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := set.Render(buf); err != nil {
		return err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", kluarserrors.ErrWrite, err)
	}

	return nil
}
