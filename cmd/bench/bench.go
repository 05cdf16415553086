package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/agnosticeng/cnf"
	"github.com/agnosticeng/cnf/providers/env"
	"github.com/agnosticeng/searchd-client/internal/searchd"
	"github.com/agnosticeng/searchd-client/internal/worker"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
)

var Flags = []cli.Flag{
	&cli.StringFlag{Name: "engine"},
	&cli.IntFlag{Name: "pool-size"},
	&cli.IntFlag{Name: "workers", Value: 10},
	&cli.IntFlag{Name: "count", Value: 100},
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run a query concurrently through the connection pool",
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			var (
				logger  = slogctx.FromCtx(ctx.Context)
				workers = ctx.Int("workers")
				count   = ctx.Int("count")
				conf    searchd.Config
			)

			if ctx.Args().Len() == 0 {
				return fmt.Errorf("a query must be specified")
			}

			var q = ctx.Args().Get(0)

			if err := cnf.Load(
				&conf,
				cnf.WithProvider(env.NewEnvProvider("SEARCHD")),
			); err != nil {
				return err
			}

			if ctx.IsSet("engine") {
				conf.Engine = ctx.String("engine")
			}

			if len(conf.Engine) == 0 {
				conf.Engine = "mysql"
			}

			if ctx.IsSet("pool-size") {
				conf.PoolSize = ctx.Int("pool-size")
			}

			runUUID, err := uuid.NewV7()

			if err != nil {
				return err
			}

			logger.Info("starting bench run", "run_id", runUUID.String(), "workers", workers, "count", count)

			var client = searchd.NewClient(ctx.Context, conf, nil)
			defer client.CloseConnections()

			var t0 = time.Now()

			err = worker.RunN(ctx.Context, workers, func(workerCtx context.Context, i int) func() error {
				return func() error {
					var workerLogger = slogctx.FromCtx(slogctx.With(workerCtx, "worker", i))

					for j := 0; j < count; j++ {
						if _, err := client.Query(workerCtx, q); err != nil {
							return err
						}
					}

					workerLogger.Debug("worker done", "queries", count)
					return nil
				}
			})

			if err != nil {
				return err
			}

			var elapsed = time.Since(t0)

			fmt.Printf(
				"%d queries in %s (%.1f queries/s)\n",
				workers*count,
				elapsed,
				float64(workers*count)/elapsed.Seconds(),
			)

			return nil
		},
	}
}
