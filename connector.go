package gosparql

import (
	"context"
	"database/sql/driver"
)

// InternalSPARQLDriver is the interface for an internal SPARQL driver
type InternalSPARQLDriver interface {
	Open(dsn string) (driver.Conn, error)
	OpenWithConfig(ctx context.Context, config Config) (driver.Conn, error)
}

// Connector creates Driver with the specified Config
type Connector struct {
	driver InternalSPARQLDriver
	cfg    Config
}

// NewConnector creates a new connector with the given driver and Config.
func NewConnector(driver InternalSPARQLDriver, config Config) Connector {
	return Connector{driver, config}
}

// Connect creates a new connection.
func (t Connector) Connect(ctx context.Context) (driver.Conn, error) {
	cfg := t.cfg
	if err := fillMissingConfigParameters(&cfg); err != nil {
		return nil, err
	}
	return t.driver.OpenWithConfig(ctx, cfg)
}

// Driver creates a new driver.
func (t Connector) Driver() driver.Driver {
	return t.driver
}
