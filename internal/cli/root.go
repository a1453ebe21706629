package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
	"github.com/MacroPower/kluars/pkg/log"
	"github.com/MacroPower/kluars/pkg/version"
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	cmd.PersistentFlags().String("log_level", "info", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", kluarserrors.ErrConfiguration, merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("%w: failed creating log handler: %w", kluarserrors.ErrConfiguration, err)
		}

		logger := slog.New(h)
		slog.SetDefault(logger)
		cc.SetContext(slogcontext.NewCtx(cc.Context(), logger))

		return nil
	}

	cmd.AddCommand(NewTranslateCmd())
	cmd.AddCommand(NewApplyCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
