package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/kube"
	"github.com/MacroPower/kluars/pkg/pipeline"
	"github.com/MacroPower/kluars/pkg/tracing"
)

const applyExample = `  # Apply to the current context's namespace
  kluars apply ./app

  # Apply namespaced resources without their own namespace to "staging"
  kluars apply ./app -n staging -a replicas=3

  # Validate against the cluster without persisting anything
  kluars apply ./app --dry-run`

// NewApplyCmd returns the apply command.
func NewApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply PATH",
		Short: "Server-side apply the manifests produced by a Lua script",
		Long: `Evaluate a Lua script and server-side apply every manifest it returns, in
order, with field manager "kluars" and conflicts forced.

Manifests whose apiVersion and kind the cluster does not serve are skipped
with a warning. Any other error stops the run.`,
		Example: applyExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			flags := cc.Flags()

			var merr error

			namespace, err := flags.GetString("namespace")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			kubeconfig, err := flags.GetString("kubeconfig")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			kubeContext, err := flags.GetString("context")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			dryRun, err := flags.GetBool("dry-run")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", kluarserrors.ErrConfiguration, merr)
			}

			env, err := scriptEnvironment(cc, args[0])
			if err != nil {
				return err
			}

			ctx := cc.Context()

			clients, err := kube.NewClients(kube.ClientOptions{
				Kubeconfig: kubeconfig,
				Context:    kubeContext,
			})
			if err != nil {
				return err
			}

			span := tracing.NewLoggingTracer(slogcontext.FromCtx(ctx)).StartSpan("discovery")
			snap, err := kube.FetchSnapshot(ctx, clients.Discovery)
			span.Finish()

			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(snap, kube.NewApplier(clients.Dynamic, kube.WithDryRun(dryRun)),
				pipeline.WithNamespace(namespace),
				pipeline.WithDefaultNamespace(clients.Namespace),
			)

			_, err = pipeline.Apply(ctx, env, runner)

			return err
		},
	}

	addScriptFlags(cmd)

	cmd.Flags().StringP("namespace", "n", "",
		"Namespace for namespaced manifests that do not set metadata.namespace")
	cmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file")
	cmd.Flags().String("context", "", "Kubeconfig context to use")
	cmd.Flags().Bool("dry-run", false, "Submit server-side dry-run requests; nothing is persisted")

	if err := cmd.MarkFlagFilename("kubeconfig"); err != nil {
		panic(err)
	}

	return cmd
}
