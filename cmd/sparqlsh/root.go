package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sp "github.com/rdfsql/gosparql"
	"github.com/rdfsql/gosparql/typemap"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	DSN        string
	Connection string
	Format     string
	Compat     string
	Tracing    string
}

var validFormats = []string{"text", "json", "yaml"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sparqlsh",
		Short: "Query SPARQL endpoints through the gosparql driver",
		Long: `Run SPARQL queries against an endpoint and print the result.

The endpoint is given by --dsn, or by a section of connections.toml
selected with --connection. Without either flag the default section
of connections.toml is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			if opts.Compat != "" {
				if _, err := typemap.ParseCompatibility(opts.Compat); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "data source name of the endpoint")
	cmd.PersistentFlags().StringVarP(&opts.Connection, "connection", "c", "", "section of connections.toml to use")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Compat, "compat", "", "compatibility level (low|high), overrides the connection setting")
	cmd.PersistentFlags().StringVar(&opts.Tracing, "tracing", "", "driver log level")

	cmd.AddCommand(newQueryCommand(opts))
	cmd.AddCommand(newDescribeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// config resolves the connection settings from the flags.
func (o *rootOptions) config() (*sp.Config, error) {
	var cfg *sp.Config
	var err error
	if o.DSN != "" {
		cfg, err = sp.ParseDSN(o.DSN)
	} else {
		if o.Connection != "" {
			if err = os.Setenv("SPARQL_DEFAULT_CONNECTION_NAME", o.Connection); err != nil {
				return nil, err
			}
		}
		cfg, err = sp.LoadConnectionConfig()
	}
	if err != nil {
		return nil, err
	}
	if o.Tracing != "" {
		cfg.Tracing = o.Tracing
	}
	return cfg, nil
}

// withOptions applies the per-query flags to ctx.
func (o *rootOptions) withOptions(ctx context.Context) context.Context {
	if o.Compat != "" {
		compat, _ := typemap.ParseCompatibility(o.Compat)
		ctx = sp.WithCompatibility(ctx, compat)
	}
	return ctx
}

// open returns a single connection to the configured endpoint. The caller
// closes both the connection and the pool.
func (o *rootOptions) open(ctx context.Context) (*sql.DB, *sql.Conn, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	db := sql.OpenDB(sp.NewConnector(sp.SPARQLDriver{}, *cfg))
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, conn, nil
}
