package searchd

import (
	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/agnosticeng/searchd-client/internal/engine/impl/native"
	"github.com/agnosticeng/searchd-client/internal/engine/impl/stdsql"
)

// DefaultRegistry builds a registry holding every built-in engine.
func DefaultRegistry() *engine.Registry {
	var r = engine.NewRegistry()
	stdsql.Register(r)
	native.Register(r)
	return r
}
