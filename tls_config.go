package gosparql

import (
	"crypto/tls"
	"sync"

	"github.com/rdfsql/gosparql/sparqlerr"
)

// tlsRegistry maps the names usable in the tls DSN parameter to their configs.
type tlsRegistry struct {
	mu      sync.RWMutex
	configs map[string]*tls.Config
}

var tlsConfigs = &tlsRegistry{configs: make(map[string]*tls.Config)}

// RegisterTLSConfig makes config available to connections whose DSN carries
// tls=name, typically to trust the private CA of a triplestore:
//
//	pool := x509.NewCertPool()
//	pool.AppendCertsFromPEM(caPEM)
//	gosparql.RegisterTLSConfig("internal-ca", &tls.Config{RootCAs: pool})
//	db, err := sql.Open("sparql", "https://graphdb.internal/repositories/kb?tls=internal-ca")
//
// The driver owns config once it is registered. Connections get clones.
func RegisterTLSConfig(name string, config *tls.Config) error {
	if config == nil {
		return sparqlerr.InvalidConfig(sparqlerr.ErrCodeInvalidDSN, "TLS config %q is nil", name)
	}
	tlsConfigs.mu.Lock()
	defer tlsConfigs.mu.Unlock()
	tlsConfigs.configs[name] = config
	return nil
}

// DeregisterTLSConfig removes the config registered under name. Open
// connections keep their clones.
func DeregisterTLSConfig(name string) {
	tlsConfigs.mu.Lock()
	defer tlsConfigs.mu.Unlock()
	delete(tlsConfigs.configs, name)
}

func getTLSConfigClone(name string) (*tls.Config, bool) {
	tlsConfigs.mu.RLock()
	defer tlsConfigs.mu.RUnlock()
	config, ok := tlsConfigs.configs[name]
	if !ok {
		return nil, false
	}
	return config.Clone(), true
}
