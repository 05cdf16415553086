package searchd

import (
	"github.com/agnosticeng/searchd-client/internal/engine"
)

type Config struct {
	Connection engine.Options
	Engine     string
	PoolSize   int
	WithMeta   bool
	WithStatus bool
}

func (conf Config) WithDefaults() Config {
	if len(conf.Connection.Host) == 0 {
		conf.Connection.Host = "127.0.0.1"
	}

	if conf.Connection.Port == 0 {
		conf.Connection.Port = 9306
	}

	if conf.PoolSize <= 0 {
		conf.PoolSize = 10
	}

	conf.Connection = conf.Connection.WithDefaults()
	return conf
}
