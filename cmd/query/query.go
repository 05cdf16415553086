package query

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agnosticeng/cnf"
	"github.com/agnosticeng/cnf/providers/env"
	"github.com/agnosticeng/searchd-client/internal/searchd"
	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
)

var Flags = []cli.Flag{
	&cli.StringFlag{Name: "engine"},
	&cli.IntFlag{Name: "pool-size"},
	&cli.StringSliceFlag{Name: "batch", Usage: "alias=SELECT ... (repeatable, ordered)"},
	&cli.BoolFlag{Name: "with-meta"},
	&cli.BoolFlag{Name: "with-status"},
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			var (
				logger = slogctx.FromCtx(ctx.Context)
				conf   searchd.Config
			)

			if err := cnf.Load(
				&conf,
				cnf.WithProvider(env.NewEnvProvider("SEARCHD")),
			); err != nil {
				return err
			}

			applyFlags(ctx, &conf)

			var client = searchd.NewClient(ctx.Context, conf, nil)

			defer func() {
				if err := client.CloseConnections(); err != nil {
					logger.Warn("error while closing connections", "error", err.Error())
				}
			}()

			var res any

			if batch := ctx.StringSlice("batch"); len(batch) > 0 {
				queries, err := parseBatch(batch)

				if err != nil {
					return err
				}

				results, err := client.Batch(ctx.Context, queries)

				if err != nil {
					return err
				}

				res = results
			} else {
				if ctx.Args().Len() == 0 {
					return fmt.Errorf("a query must be specified")
				}

				rows, err := client.Query(ctx.Context, ctx.Args().Get(0))

				if err != nil {
					return err
				}

				res = rows
			}

			var enc = json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func applyFlags(ctx *cli.Context, conf *searchd.Config) {
	if ctx.IsSet("engine") {
		conf.Engine = ctx.String("engine")
	}

	if len(conf.Engine) == 0 {
		conf.Engine = "mysql"
	}

	if ctx.IsSet("pool-size") {
		conf.PoolSize = ctx.Int("pool-size")
	}

	if ctx.IsSet("with-meta") {
		conf.WithMeta = ctx.Bool("with-meta")
	}

	if ctx.IsSet("with-status") {
		conf.WithStatus = ctx.Bool("with-status")
	}
}

func parseBatch(pairs []string) ([]searchd.BatchQuery, error) {
	var queries = make([]searchd.BatchQuery, 0, len(pairs))

	for _, pair := range pairs {
		alias, q, found := strings.Cut(pair, "=")

		if !found || len(alias) == 0 {
			return nil, fmt.Errorf("invalid batch entry %q, expected alias=query", pair)
		}

		queries = append(queries, searchd.BatchQuery{Query: q, Alias: alias})
	}

	return queries, nil
}
