package gosparql

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTLSConfig(t *testing.T) {
	require.NoError(t, RegisterTLSConfig("custom", &tls.Config{ServerName: "triplestore.internal"}))
	defer DeregisterTLSConfig("custom")

	clone, ok := getTLSConfigClone("custom")
	require.True(t, ok)
	assert.Equal(t, "triplestore.internal", clone.ServerName)
	clone.ServerName = "changed"
	again, _ := getTLSConfigClone("custom")
	assert.Equal(t, "triplestore.internal", again.ServerName)

	assert.ErrorIs(t, RegisterTLSConfig("nil", nil), ErrInvalidConfig)
}

func TestDSNWithTLSConfig(t *testing.T) {
	require.NoError(t, RegisterTLSConfig("custom", &tls.Config{ServerName: "triplestore.internal"}))
	defer DeregisterTLSConfig("custom")

	cfg, err := ParseDSN("https://example.org/sparql?tls=custom&insecureMode=true")
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.TLSConfigName)
	require.NotNil(t, cfg.TLSConfig)
	assert.Equal(t, "triplestore.internal", cfg.TLSConfig.ServerName)
	assert.True(t, cfg.InsecureMode)
	assert.Empty(t, cfg.Params)

	dsn, err := DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/sparql?insecureMode=true&tls=custom", dsn)

	DeregisterTLSConfig("custom")
	_, err = ParseDSN("https://example.org/sparql?tls=custom")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
