package cli

import (
	"fmt"
	"io"

	"github.com/riskibarqy/understat-xg/internal/app"
	"github.com/riskibarqy/understat-xg/internal/platform/id"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var cliTracer = otel.Tracer("understat-xg/internal/interfaces/cli")

// AppFactory builds the app for one run, around a logger scoped to that run.
type AppFactory func(logger *logging.Logger) *app.App

type runner struct {
	factory AppFactory
	ids     id.Generator
	logger  *logging.Logger
	app     *app.App
	runID   string
}

// NewRootCommand returns the understat-xg command tree.
func NewRootCommand(factory AppFactory, ids id.Generator, logger *logging.Logger) *cobra.Command {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	r := &runner{factory: factory, ids: ids, logger: logger}

	root := &cobra.Command{
		Use:           "understat-xg",
		Short:         "Download Understat team results and flatten them into xG datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
	}

	root.AddCommand(
		r.fetchCommand(),
		r.convertCommand(),
		r.aggregateCommand(),
		r.summaryCommand(),
	)
	return root
}

func (r *runner) setup(cmd *cobra.Command) error {
	runID, err := r.ids.NewID()
	if err != nil {
		return err
	}
	r.runID = runID
	scoped := r.logger.With("run_id", runID, "command", cmd.Name())
	r.app = r.factory(scoped)
	scoped.DebugContext(cmd.Context(), "command started")
	return nil
}

func printPaths(w io.Writer, paths ...string) {
	for _, path := range paths {
		fmt.Fprintln(w, path)
	}
}

// traced runs fn under the root span of the command, so use-case spans have a parent.
func (r *runner) traced(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, span := cliTracer.Start(cmd.Context(), "cli."+cmd.Name())
		defer span.End()
		span.SetAttributes(
			attribute.String("run_id", r.runID),
			attribute.StringSlice("args", args),
		)

		cmd.SetContext(ctx)
		err := fn(cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
