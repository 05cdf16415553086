package searchd

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/google/uuid"
	"github.com/samber/lo"
	slogctx "github.com/veqryn/slog-context"
)

const (
	showMetaQuery   = "SHOW META"
	showStatusQuery = "SHOW STATUS"
)

type BatchQuery struct {
	Query string
	Alias string
}

type SubResult struct {
	Items  []engine.Row      `json:"items"`
	Meta   map[string]string `json:"meta,omitempty"`
	Status map[string]string `json:"status,omitempty"`
}

// Client executes SphinxQL queries against searchd over a fixed pool of
// connections. A client whose engine could not be resolved is still
// constructed; every execution then fails with ErrNotConfigured.
type Client struct {
	conf Config
	eng  engine.Engine
	pool *ConnPool
}

func NewClient(ctx context.Context, conf Config, reg *engine.Registry) *Client {
	var logger = slogctx.FromCtx(ctx)

	conf = conf.WithDefaults()

	if reg == nil {
		reg = DefaultRegistry()
	}

	var eng engine.Engine

	ctor, found := reg.Lookup(conf.Engine)

	if !found {
		logger.Warn(
			fmt.Sprintf(
				"%q is not a registered sql engine, use one of: %s",
				conf.Engine,
				strings.Join(reg.Names(), ", "),
			),
		)
	} else {
		var err error
		eng, err = ctor(conf.Connection)

		if err != nil {
			logger.Error("cannot instantiate sql engine", "name", conf.Engine, "error", err.Error())
			eng = nil
		}
	}

	return &Client{
		conf: conf,
		eng:  eng,
		pool: NewConnPool(eng, conf.PoolSize),
	}
}

// Query executes a single query and returns its rows in order.
func (c *Client) Query(ctx context.Context, query string) ([]engine.Row, error) {
	var (
		logger = slogctx.FromCtx(ctx)
		rows   []engine.Row
	)

	id, err := uuid.NewV7()

	if err != nil {
		return nil, err
	}

	logger.Debug("executing query", "query_id", id.String(), "query", query)

	err = c.withCursor(ctx, func(ctx context.Context, cur engine.Cursor) error {
		if err := cur.Execute(ctx, query); err != nil {
			return err
		}

		rows = cur.All()
		return nil
	})

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Batch executes an ordered list of aliased queries on one connection and
// returns per-alias results. Later entries with a duplicate alias
// overwrite earlier ones. The first failing query aborts the remainder.
func (c *Client) Batch(ctx context.Context, queries []BatchQuery) (map[string]*SubResult, error) {
	var (
		logger  = slogctx.FromCtx(ctx)
		results map[string]*SubResult
	)

	id, err := uuid.NewV7()

	if err != nil {
		return nil, err
	}

	logger.Debug("executing batch", "batch_id", id.String(), "queries", len(queries))

	err = c.withCursor(ctx, func(ctx context.Context, cur engine.Cursor) error {
		var acc = make(map[string]*SubResult)

		for _, q := range queries {
			var sub SubResult

			if err := cur.Execute(ctx, q.Query); err != nil {
				return err
			}

			sub.Items = cur.All()

			if c.conf.WithMeta {
				if err := cur.Execute(ctx, showMetaQuery); err != nil {
					return err
				}

				sub.Meta = flattenRows(cur.All(), "Variable_name", "Value")
			}

			if c.conf.WithStatus {
				if err := cur.Execute(ctx, showStatusQuery); err != nil {
					return err
				}

				sub.Status = flattenRows(cur.All(), "Counter", "Value")
			}

			acc[q.Alias] = &sub
		}

		results = acc
		return nil
	})

	if err != nil {
		return nil, err
	}

	// a swallowed benign error leaves the batch unassigned
	if results == nil {
		results = make(map[string]*SubResult)
	}

	return results, nil
}

// CloseConnections tears down idle pooled connections. Safe to call more
// than once.
func (c *Client) CloseConnections() error {
	return c.pool.Close()
}

func (c *Client) withCursor(ctx context.Context, f func(ctx context.Context, cur engine.Cursor) error) error {
	conn, err := c.pool.Acquire(ctx)

	if err != nil {
		return err
	}

	defer conn.Release()

	cur, err := conn.Cursor(c.conf.Connection.CursorKind)

	if err != nil {
		return c.eng.TranslateError(err)
	}

	defer cur.Close()

	if err := f(ctx, cur); err != nil {
		// a nil translation means the driver classified the failure as
		// benign and the call completes without a result
		return c.eng.TranslateError(err)
	}

	return nil
}

func flattenRows(rows []engine.Row, key string, value string) map[string]string {
	return lo.SliceToMap(rows, func(row engine.Row) (string, string) {
		return asString(row[key]), asString(row[value])
	})
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
