package gosparql

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// transportConfig holds the configuration for creating HTTP transports
type transportConfig struct {
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	DialTimeout         time.Duration
	KeepAlive           time.Duration
	TLSHandshakeTimeout time.Duration
}

// defaultTransportConfig returns the standard transport configuration
func defaultTransportConfig() *transportConfig {
	return &transportConfig{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Minute,
		DialTimeout:         30 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

// transportFactory creates the HTTP transport of a connection.
type transportFactory struct {
	config *Config
}

func newTransportFactory(config *Config) *transportFactory {
	return &transportFactory{config: config}
}

func (tf *transportFactory) createBaseTransport(transportConfig *transportConfig, tlsConfig *tls.Config) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   transportConfig.DialTimeout,
		KeepAlive: transportConfig.KeepAlive,
	}

	return &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxIdleConns:        transportConfig.MaxIdleConns,
		MaxIdleConnsPerHost: transportConfig.MaxIdleConnsPerHost,
		IdleConnTimeout:     transportConfig.IdleConnTimeout,
		TLSHandshakeTimeout: transportConfig.TLSHandshakeTimeout,
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
	}
}

// tlsConfig returns the TLS settings of the connection, nil for the defaults.
func (tf *transportFactory) tlsConfig() *tls.Config {
	var tlsConfig *tls.Config
	if tf.config.TLSConfig != nil {
		tlsConfig = tf.config.TLSConfig.Clone()
	}
	if tf.config.InsecureMode {
		if tlsConfig == nil {
			tlsConfig = &tls.Config{}
		}
		tlsConfig.InsecureSkipVerify = true
	}
	if tlsConfig != nil && tlsConfig.MinVersion == 0 {
		tlsConfig.MinVersion = tls.VersionTLS12
	}
	return tlsConfig
}

// createTransport is the main entry point for creating transports
func (tf *transportFactory) createTransport() http.RoundTripper {
	if tf.config.Transporter != nil {
		return tf.config.Transporter
	}
	if tf.config.InsecureMode {
		logger.Warnf("certificate verification is disabled for %v", tf.config.Endpoint)
	}
	return tf.createBaseTransport(defaultTransportConfig(), tf.tlsConfig())
}
