package gosparql

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	path "path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	toml "github.com/BurntSushi/toml"

	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

const (
	sparqlHomeEnv              = "SPARQL_HOME"
	sparqlDefaultConnectionEnv = "SPARQL_DEFAULT_CONNECTION_NAME"
	connectionsFileName        = "connections.toml"
)

// LoadConnectionConfig returns the connection config loaded from the toml file.
// By default, SPARQL_HOME (the directory of connections.toml) is os.home/.sparql
// and SPARQL_DEFAULT_CONNECTION_NAME (the section) is 'default'.
func LoadConnectionConfig() (*Config, error) {
	connectionName := getConnectionName(os.Getenv(sparqlDefaultConnectionEnv))
	configDir, err := getTomlFilePath(os.Getenv(sparqlHomeEnv))
	if err != nil {
		return nil, err
	}
	tomlFilePath := path.Join(configDir, connectionsFileName)
	if err = validateFilePermission(tomlFilePath); err != nil {
		return nil, err
	}
	tomlInfo := make(map[string]interface{})
	if _, err = toml.DecodeFile(tomlFilePath, &tomlInfo); err != nil {
		return nil, &sparqlerr.Error{
			Number:      sparqlerr.ErrCodeTomlFileParsingFailed,
			SQLState:    sparqlerr.SQLStateInvalidAuthorizationSpec,
			Kind:        sparqlerr.KindInvalidConfig,
			Message:     "failed to parse %v",
			MessageArgs: []interface{}{tomlFilePath},
			Err:         err,
		}
	}
	section, exist := tomlInfo[connectionName]
	if !exist {
		return nil, sparqlerr.InvalidConfig(sparqlerr.ErrCodeFailedToFindDSNInToml,
			"connection %q is not defined in %v", connectionName, tomlFilePath)
	}
	connection, ok := section.(map[string]interface{})
	if !ok {
		return nil, sparqlerr.InvalidConfig(sparqlerr.ErrCodeTomlFileParsingFailed,
			"connection %q in %v is not a table", connectionName, tomlFilePath)
	}
	cfg := &Config{Params: url.Values{}}
	if err = parseToml(cfg, connection); err != nil {
		return nil, err
	}
	if err = fillMissingConfigParameters(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseToml(cfg *Config, connection map[string]interface{}) error {
	var parsingErr error
	var v string
	for key, value := range connection {
		switch strings.ToLower(key) {
		case "endpoint", "url":
			cfg.Endpoint, parsingErr = parseString(value)
		case "user", "username":
			cfg.User, parsingErr = parseString(value)
		case "password":
			cfg.Password, parsingErr = parseString(value)
		case "token":
			cfg.Token, parsingErr = parseString(value)
		case "compatibility":
			if v, parsingErr = parseString(value); parsingErr == nil {
				cfg.Compatibility, parsingErr = typemap.ParseCompatibility(v)
			}
		case "resultformat":
			if v, parsingErr = parseString(value); parsingErr == nil {
				format, ok := results.ParseFormat(v)
				if !ok || format == results.FormatNTriples {
					parsingErr = fmt.Errorf("unknown result format %q", v)
				}
				cfg.ResultFormat = format
			}
		case "defaultgraphuri", "default-graph-uri":
			cfg.DefaultGraphURIs, parsingErr = parseStrings(value)
		case "namedgraphuri", "named-graph-uri":
			cfg.NamedGraphURIs, parsingErr = parseStrings(value)
		case "querytimeout":
			cfg.QueryTimeout, parsingErr = parseDuration(value)
		case "scrollinsensitive":
			cfg.ScrollInsensitive, parsingErr = parseBool(value)
		case "maxrows":
			cfg.MaxRows, parsingErr = parseInt(value)
		case "application":
			cfg.Application, parsingErr = parseString(value)
		case "resultcachesize":
			cfg.ResultCacheSize, parsingErr = parseInt(value)
		case "resultcachettl":
			cfg.ResultCacheTTL, parsingErr = parseDuration(value)
		case "tracing":
			cfg.Tracing, parsingErr = parseString(value)
		case "tls":
			if v, parsingErr = parseString(value); parsingErr == nil {
				tlsConfig, ok := getTLSConfigClone(v)
				if !ok {
					parsingErr = fmt.Errorf("TLS config %q is not registered", v)
				}
				cfg.TLSConfigName, cfg.TLSConfig = v, tlsConfig
			}
		case "insecuremode":
			cfg.InsecureMode, parsingErr = parseBool(value)
		case "params":
			params, ok := value.(map[string]interface{})
			if !ok {
				parsingErr = errors.New("params must be a table")
				break
			}
			for name, param := range params {
				values, err := parseStrings(param)
				if err != nil {
					return tomlParsingError(key+"."+name, param, err)
				}
				cfg.Params[name] = append(cfg.Params[name], values...)
			}
		default:
			param, err := parseString(value)
			if err != nil {
				return tomlParsingError(key, value, err)
			}
			cfg.Params.Add(key, param)
		}
		if parsingErr != nil {
			return tomlParsingError(key, value, parsingErr)
		}
	}
	return nil
}

func tomlParsingError(key string, value interface{}, cause error) error {
	if strings.EqualFold(key, "password") || strings.EqualFold(key, "token") {
		value = "****"
	}
	return &sparqlerr.Error{
		Number:      sparqlerr.ErrCodeTomlFileParsingFailed,
		SQLState:    sparqlerr.SQLStateInvalidAuthorizationSpec,
		Kind:        sparqlerr.KindInvalidConfig,
		Message:     "failed to parse the value of %v: %v",
		MessageArgs: []interface{}{key, value},
		Err:         cause,
	}
}

func parseInt(i interface{}) (int, error) {
	switch v := i.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		return strconv.Atoi(v)
	}
	return 0, errors.New("failed to parse the value to integer")
}

func parseBool(i interface{}) (bool, error) {
	switch v := i.(type) {
	case bool:
		return v, nil
	case string:
		vv, err := strconv.ParseBool(v)
		if err != nil {
			return false, errors.New("failed to parse the value to boolean")
		}
		return vv, nil
	}
	return false, errors.New("failed to parse the value to boolean")
}

// parseDuration accepts a number of seconds or a duration string.
func parseDuration(i interface{}) (time.Duration, error) {
	if v, ok := i.(string); ok {
		return parseDurationParam(v)
	}
	num, err := parseInt(i)
	if err != nil {
		return 0, err
	}
	return time.Duration(num) * time.Second, nil
}

func parseString(i interface{}) (string, error) {
	v, ok := i.(string)
	if !ok {
		return "", errors.New("failed to convert the value to string")
	}
	return v, nil
}

func parseStrings(i interface{}) ([]string, error) {
	switch v := i.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, err := parseString(e)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errors.New("failed to convert the value to a list of strings")
}

func getTomlFilePath(filePath string) (string, error) {
	if len(filePath) != 0 {
		if path.IsAbs(filePath) {
			return filePath, nil
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		filePath = path.Join(homeDir, ".sparql")
	}
	return path.Abs(filePath)
}

func getConnectionName(name string) string {
	if len(name) != 0 {
		return name
	}
	return "default"
}

// validateFilePermission rejects files writable by group or others.
func validateFilePermission(filePath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return sparqlerr.InvalidConfig(sparqlerr.ErrCodeFailedToFindDSNInToml, "cannot read %v: %v", filePath, err)
	}
	if permission := fileInfo.Mode().Perm(); permission&0o022 != 0 {
		return sparqlerr.InvalidConfig(sparqlerr.ErrCodeInvalidFilePermission,
			"file %v is writable by group or others, permission %#o", filePath, permission)
	}
	return nil
}
