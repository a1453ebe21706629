package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/script"
)

// addScriptFlags registers the flags shared by every command that evaluates
// a script.
func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("args", "a", nil,
		"Set a script global as KEY=VALUE, repeatable; overrides the globals file")
	cmd.Flags().StringP("globals", "g", "",
		"Lua file run before the script to define default globals")

	if err := cmd.MarkFlagFilename("globals", "lua"); err != nil {
		panic(err)
	}
}

// scriptEnvironment builds the evaluation environment for path from the
// flags added by [addScriptFlags].
func scriptEnvironment(cc *cobra.Command, path string) (*script.Environment, error) {
	flags := cc.Flags()

	var merr error

	args, err := flags.GetStringArray("args")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	valuesPath, err := flags.GetString("globals")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", kluarserrors.ErrConfiguration, merr)
	}

	globals, err := script.ParseGlobals(args)
	if err != nil {
		return nil, err
	}

	return script.NewEnvironment(path, valuesPath, globals)
}
