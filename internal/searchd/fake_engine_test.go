package searchd

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/agnosticeng/searchd-client/internal/engine"
)

type fakeEngine struct {
	mu        sync.Mutex
	opened    atomic.Int64
	results   map[string][]engine.Row
	execErrs  map[string]error
	execLog   []string
	openErr   error
	translate func(err error) error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		results:  make(map[string][]engine.Row),
		execErrs: make(map[string]error),
	}
}

func (eng *fakeEngine) Open(ctx context.Context) (engine.Conn, error) {
	if eng.openErr != nil {
		return nil, eng.openErr
	}

	eng.opened.Add(1)
	return &fakeConn{eng: eng}, nil
}

func (eng *fakeEngine) TranslateError(err error) error {
	if eng.translate != nil {
		return eng.translate(err)
	}

	return engine.NewError(err)
}

func (eng *fakeEngine) executed() []string {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return append([]string(nil), eng.execLog...)
}

type fakeConn struct {
	eng    *fakeEngine
	inUse  atomic.Bool
	closed atomic.Bool
}

func (conn *fakeConn) Cursor(kind engine.CursorKind) (engine.Cursor, error) {
	return &fakeCursor{conn: conn}, nil
}

func (conn *fakeConn) Close() error {
	conn.closed.Store(true)
	return nil
}

type fakeCursor struct {
	conn *fakeConn
	rows []engine.Row
}

func (cur *fakeCursor) Execute(ctx context.Context, query string) error {
	var eng = cur.conn.eng

	eng.mu.Lock()
	eng.execLog = append(eng.execLog, query)
	err := eng.execErrs[query]
	rows := eng.results[query]
	eng.mu.Unlock()

	if err != nil {
		return err
	}

	cur.rows = rows
	return nil
}

func (cur *fakeCursor) All() []engine.Row {
	return cur.rows
}

func (cur *fakeCursor) Close() error {
	cur.rows = nil
	return nil
}
