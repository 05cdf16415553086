package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type nopEngine struct {
	Engine
	tag string
}

func ctorFor(tag string) Constructor {
	return func(opts Options) (Engine, error) {
		return nopEngine{tag: tag}, nil
	}
}

func TestRegistryLookup(t *testing.T) {
	var r = NewRegistry()
	r.Register("a", ctorFor("a"))

	ctor, found := r.Lookup("a")
	require.True(t, found)
	require.NotNil(t, ctor)

	_, found = r.Lookup("missing")
	require.False(t, found)
}

func TestRegistryAliasingOverwrites(t *testing.T) {
	var r = NewRegistry()
	r.Register("a", ctorFor("first"))
	r.Register("a", ctorFor("second"))

	ctor, found := r.Lookup("a")
	require.True(t, found)

	eng, err := ctor(Options{})
	require.NoError(t, err)
	require.Equal(t, "second", eng.(nopEngine).tag)
	require.Equal(t, []string{"a"}, r.Names())
}

func TestRegistryNamesSorted(t *testing.T) {
	var r = NewRegistry()
	r.Register("mysqldb", ctorFor("x"))
	r.Register("mysql", ctorFor("x"))
	r.Register("native", ctorFor("x"))

	require.Equal(t, []string{"mysql", "mysqldb", "native"}, r.Names())
}

func TestOptionsWithDefaults(t *testing.T) {
	var opts = Options{}.WithDefaults()

	require.Equal(t, "localhost", opts.Host)
	require.Equal(t, 3306, opts.Port)
	require.Equal(t, 10*time.Second, opts.ConnectTimeout)
	require.Equal(t, "utf8", opts.Charset)
	require.Equal(t, CursorDict, opts.CursorKind)
}

func TestOptionsAddr(t *testing.T) {
	require.Equal(t, "127.0.0.1:9306", Options{Host: "127.0.0.1", Port: 9306}.Addr())
	require.Equal(t, "/var/run/searchd.sock", Options{UnixSocket: "/var/run/searchd.sock"}.Addr())
}
