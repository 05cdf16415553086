package stdsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/go-sql-driver/mysql"
	"github.com/samber/lo"
)

const driverName = "mysql"

func Register(r *engine.Registry) {
	r.Register("mysql", New)
	r.Register("mysqldb", New)
}

type Engine struct {
	opts engine.Options
	dsn  string
}

func New(opts engine.Options) (engine.Engine, error) {
	opts = opts.WithDefaults()

	if !lo.Contains(sql.Drivers(), driverName) {
		return nil, fmt.Errorf("%s: %w", driverName, engine.ErrUnavailable)
	}

	var cfg = mysql.NewConfig()
	cfg.Net = "tcp"

	if len(opts.UnixSocket) > 0 {
		cfg.Net = "unix"
	}

	cfg.Addr = opts.Addr()
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.DBName = opts.Database
	cfg.Timeout = opts.ConnectTimeout
	cfg.Params = map[string]string{"charset": opts.Charset}

	if len(opts.SQLMode) > 0 {
		cfg.Params["sql_mode"] = "'" + opts.SQLMode + "'"
	}

	return &Engine{
		opts: opts,
		dsn:  cfg.FormatDSN(),
	}, nil
}

// Open hands out a *sql.DB capped at a single underlying connection, so
// that one pool slot maps to exactly one wire connection.
func (eng *Engine) Open(ctx context.Context) (engine.Conn, error) {
	db, err := sql.Open(driverName, eng.dsn)

	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Conn{db: db}, nil
}

func (eng *Engine) TranslateError(err error) error {
	return engine.NewError(err)
}

type Conn struct {
	db *sql.DB
}

func (conn *Conn) Cursor(kind engine.CursorKind) (engine.Cursor, error) {
	if kind != engine.CursorDict {
		return nil, fmt.Errorf("unknown cursor kind: %s", kind)
	}

	return &Cursor{db: conn.db}, nil
}

func (conn *Conn) Close() error {
	return conn.db.Close()
}

type Cursor struct {
	db   *sql.DB
	rows []engine.Row
}

func (cur *Cursor) Execute(ctx context.Context, query string) error {
	rows, err := cur.db.QueryContext(ctx, query)

	if err != nil {
		return err
	}

	defer rows.Close()

	res, err := scanRows(rows)

	if err != nil {
		return err
	}

	cur.rows = res
	return rows.Err()
}

func (cur *Cursor) All() []engine.Row {
	return cur.rows
}

func (cur *Cursor) Close() error {
	cur.rows = nil
	return nil
}

func scanRows(rows *sql.Rows) ([]engine.Row, error) {
	cols, err := rows.Columns()

	if err != nil {
		return nil, err
	}

	var res []engine.Row

	for rows.Next() {
		var (
			vals = make([]any, len(cols))
			ptrs = make([]any, len(cols))
		)

		for i := range vals {
			ptrs[i] = &vals[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		var row = make(engine.Row, len(cols))

		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}

		res = append(res, row)
	}

	return res, nil
}
