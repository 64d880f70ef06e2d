// Package schedule implements the schedule command: running the full
// pipeline on a cron schedule.
package schedule

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/aquanets/aquacrawl/cmd/common"
	cmdpipeline "github.com/aquanets/aquacrawl/cmd/pipeline"
	"github.com/aquanets/aquacrawl/internal/logger"
)

// defaultCronSpec runs the pipeline daily at 03:00.
const defaultCronSpec = "0 3 * * *"

// Command returns the schedule command for use in the root command.
func Command() *cobra.Command {
	var cronSpec string
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the crawl and process pipeline on a cron schedule",
		Long: `Schedule keeps the process alive and runs the full pipeline on the given
cron schedule. An already-running pipeline is never overlapped; a tick that
fires while one is in flight is skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}

			return run(cmd, deps, cronSpec, runNow)
		},
	}

	cmd.Flags().StringVar(&cronSpec, "cron", defaultCronSpec,
		"cron schedule for pipeline runs")
	cmd.Flags().BoolVar(&runNow, "run-now", false,
		"run the pipeline once immediately, then follow the schedule")

	return cmd
}

// run blocks on the cron scheduler until the command context is cancelled.
func run(cmd *cobra.Command, deps *common.CommandDeps, cronSpec string, runNow bool) error {
	ctx := cmd.Context()
	log := deps.Logger.WithComponent("schedule")
	cronLog := &cronLogger{log: log}

	runPipeline := func() {
		if err := cmdpipeline.Run(ctx, deps); err != nil {
			log.Error("scheduled pipeline run failed", "error", err.Error())
		}
	}

	scheduler := cron.New(cron.WithLogger(cronLog), cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
	))
	if _, err := scheduler.AddFunc(cronSpec, runPipeline); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", cronSpec, err)
	}

	if runNow {
		runPipeline()
	}

	log.Info("scheduler started", "cron", cronSpec)
	scheduler.Start()

	<-ctx.Done()
	log.Info("scheduler stopping")
	<-scheduler.Stop().Done()

	return nil
}

// cronLogger adapts our logger to the cron.Logger interface.
type cronLogger struct {
	log logger.Interface
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err.Error()}, keysAndValues...)...)
}
