package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// ErrUnavailable is returned by an engine constructor whose underlying
// driver is not linked into the binary.
var ErrUnavailable = errors.New("sql engine driver is unavailable")

type Row map[string]any

type CursorKind string

const CursorDict CursorKind = "dict"

type Options struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	UnixSocket     string
	ConnectTimeout time.Duration
	Charset        string
	SQLMode        string
	CursorKind     CursorKind
}

func (opts Options) WithDefaults() Options {
	if len(opts.Host) == 0 {
		opts.Host = "localhost"
	}

	if opts.Port == 0 {
		opts.Port = 3306
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	if len(opts.Charset) == 0 {
		opts.Charset = "utf8"
	}

	if len(opts.CursorKind) == 0 {
		opts.CursorKind = CursorDict
	}

	return opts
}

func (opts Options) Addr() string {
	if len(opts.UnixSocket) > 0 {
		return opts.UnixSocket
	}

	return net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
}

type Engine interface {
	Open(ctx context.Context) (Conn, error)

	// TranslateError normalizes a driver error into *Error. A nil return
	// means the driver classified the error as benign and it must be
	// swallowed by the caller.
	TranslateError(err error) error
}

type Conn interface {
	Cursor(kind CursorKind) (Cursor, error)
	Close() error
}

type Cursor interface {
	Execute(ctx context.Context, query string) error
	All() []Row
	Close() error
}

// Error is the single error kind all driver failures are normalized to.
type Error struct {
	cause error
}

func NewError(cause error) *Error {
	return &Error{cause: cause}
}

func (e *Error) Error() string {
	return fmt.Sprintf("searchd driver error: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}
