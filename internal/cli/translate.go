package cli

import (
	"github.com/spf13/cobra"

	"github.com/MacroPower/kluars/pkg/pipeline"
)

const translateExample = `  # Render a single script
  kluars translate pod.lua

  # Render a directory with an init.lua entry point
  kluars translate ./app

  # Override defaults from a globals file
  kluars translate template.lua -g values.lua -a name=web -a port=8080`

// NewTranslateCmd returns the translate command.
func NewTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "translate PATH",
		Aliases: []string{"xlate"},
		Short:   "Render a Lua script as Kubernetes manifests",
		Long: `Evaluate a Lua script and print the manifests it returns as YAML.

A script returning a single table prints one document. A script returning a
list of tables prints one document per entry, each preceded by "---".`,
		Example: translateExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			env, err := scriptEnvironment(cc, args[0])
			if err != nil {
				return err
			}

			return pipeline.Translate(cc.Context(), env, cc.OutOrStdout())
		},
	}

	addScriptFlags(cmd)

	return cmd
}
