package searchd

import (
	"context"
	"errors"
	"sync"

	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/hashicorp/go-multierror"
)

// ErrNotConfigured is returned when no usable sql engine was configured.
// The client is constructible in that state; the error surfaces on first
// use.
var ErrNotConfigured = errors.New("a usable sql engine is required to talk to searchd")

// ConnPool is a fixed-size pool of searchd connections. It fills itself
// lazily on first acquire; an exhausted pool blocks callers until a
// connection is released.
type ConnPool struct {
	eng    engine.Engine
	size   int
	lock   sync.Mutex
	filled bool
	idle   chan *Conn
}

type Conn struct {
	pool *ConnPool
	engine.Conn
}

func (conn *Conn) Release() {
	conn.pool.release(conn)
}

func NewConnPool(eng engine.Engine, size int) *ConnPool {
	if size <= 0 {
		size = 10
	}

	return &ConnPool{
		eng:  eng,
		size: size,
		idle: make(chan *Conn, size),
	}
}

func (pool *ConnPool) Acquire(ctx context.Context) (*Conn, error) {
	if err := pool.fill(ctx); err != nil {
		return nil, err
	}

	select {
	case conn := <-pool.idle:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (pool *ConnPool) fill(ctx context.Context) error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.filled {
		return nil
	}

	if pool.eng == nil {
		return ErrNotConfigured
	}

	for i := 0; i < pool.size; i++ {
		conn, err := pool.eng.Open(ctx)

		if err != nil {
			pool.drain()

			if terr := pool.eng.TranslateError(err); terr != nil {
				return terr
			}

			return err
		}

		pool.idle <- &Conn{pool: pool, Conn: conn}
	}

	pool.filled = true
	return nil
}

func (pool *ConnPool) release(conn *Conn) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	// the pool was torn down while this connection was checked out; it
	// must not re-enter the idle set or the next fill would overshoot
	// the pool size
	if !pool.filled {
		conn.Conn.Close()
		return
	}

	select {
	case pool.idle <- conn:
	default:
		conn.Conn.Close()
	}
}

// Close sweeps idle connections only. Connections checked out at the time
// of the call are not reachable; callers must serialize teardown against
// in-flight use.
func (pool *ConnPool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var res *multierror.Error

	for {
		select {
		case conn := <-pool.idle:
			if err := conn.Conn.Close(); err != nil {
				res = multierror.Append(res, err)
			}
		default:
			pool.filled = false
			return res.ErrorOrNil()
		}
	}
}

func (pool *ConnPool) drain() {
	for {
		select {
		case conn := <-pool.idle:
			conn.Conn.Close()
		default:
			return
		}
	}
}
