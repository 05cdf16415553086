package native

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/go-mysql-org/go-mysql/client"
	"github.com/go-mysql-org/go-mysql/mysql"
)

func Register(r *engine.Registry) {
	r.Register("native", New)
}

type Engine struct {
	opts engine.Options
}

func New(opts engine.Options) (engine.Engine, error) {
	return &Engine{opts: opts.WithDefaults()}, nil
}

func (eng *Engine) Open(ctx context.Context) (engine.Conn, error) {
	var (
		network = "tcp"
		dialer  = &net.Dialer{Timeout: eng.opts.ConnectTimeout}
	)

	if len(eng.opts.UnixSocket) > 0 {
		network = "unix"
	}

	conn, err := client.ConnectWithDialer(
		ctx,
		network,
		eng.opts.Addr(),
		eng.opts.User,
		eng.opts.Password,
		eng.opts.Database,
		dialer.DialContext,
	)

	if err != nil {
		return nil, err
	}

	if len(eng.opts.Charset) > 0 {
		if err := conn.SetCharset(eng.opts.Charset); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if len(eng.opts.SQLMode) > 0 {
		if _, err := conn.Execute(fmt.Sprintf("SET sql_mode = '%s'", eng.opts.SQLMode)); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return &Conn{conn: conn}, nil
}

// TranslateError treats a server error with code 0 as "no real error":
// the protocol carried an error packet but the server did not flag a
// failure, so the caller must proceed as if the query succeeded.
func (eng *Engine) TranslateError(err error) error {
	var myErr *mysql.MyError

	if errors.As(err, &myErr) && myErr.Code == 0 {
		return nil
	}

	return engine.NewError(err)
}

type Conn struct {
	conn *client.Conn
}

func (conn *Conn) Cursor(kind engine.CursorKind) (engine.Cursor, error) {
	if kind != engine.CursorDict {
		return nil, fmt.Errorf("unknown cursor kind: %s", kind)
	}

	return &Cursor{conn: conn.conn}, nil
}

func (conn *Conn) Close() error {
	return conn.conn.Close()
}

type Cursor struct {
	conn *client.Conn
	rows []engine.Row
}

func (cur *Cursor) Execute(ctx context.Context, query string) error {
	res, err := cur.conn.Execute(query)

	if err != nil {
		return err
	}

	if res.Resultset == nil {
		cur.rows = nil
		return nil
	}

	var rows = make([]engine.Row, 0, len(res.Values))

	for i := range res.Values {
		var row = make(engine.Row, len(res.Fields))

		for j, field := range res.Fields {
			var v = res.Values[i][j].Value()

			if b, ok := v.([]byte); ok {
				row[string(field.Name)] = string(b)
			} else {
				row[string(field.Name)] = v
			}
		}

		rows = append(rows, row)
	}

	cur.rows = rows
	return nil
}

func (cur *Cursor) All() []engine.Row {
	return cur.rows
}

func (cur *Cursor) Close() error {
	cur.rows = nil
	return nil
}
