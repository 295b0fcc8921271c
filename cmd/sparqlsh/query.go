package main

import (
	"github.com/spf13/cobra"

	sp "github.com/rdfsql/gosparql"
	"github.com/rdfsql/gosparql/resultset"
)

type queryOptions struct {
	*rootOptions
	MaxRows int
}

func newQueryCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &queryOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Run a query and print its rows",
		Long: `Run a SELECT, ASK, CONSTRUCT or DESCRIBE query and print the rows.

ASK results have a single boolean column. CONSTRUCT and DESCRIBE
results have the columns subject, predicate and object.

Examples:
  sparqlsh query --dsn https://dbpedia.org/sparql "SELECT * WHERE { ?s ?p ?o } LIMIT 3"
  sparqlsh query -c staging --format yaml --compat high "ASK { ?s a ?t }"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0])
		},
	}
	cmd.Flags().IntVar(&opts.MaxRows, "max-rows", 0, "limit the rows printed (0 for no limit)")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *queryOptions, text string) error {
	ctx := opts.withOptions(cmd.Context())
	if opts.MaxRows > 0 {
		ctx = sp.WithMaxRows(ctx, opts.MaxRows)
	}
	db, conn, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer conn.Close()

	rs, err := sp.QueryResultSet(ctx, conn, text)
	if err != nil {
		return err
	}
	defer rs.Close()

	t, err := readRows(rs)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), opts.Format, t)
}

func readRows(rs *resultset.ResultSet) (*table, error) {
	columns, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	t := &table{Columns: columns, Rows: [][]interface{}{}}
	for {
		ok, err := rs.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return t, nil
		}
		row := make([]interface{}, len(columns))
		for i := range columns {
			v, err := rs.GetObject(i + 1)
			if err != nil {
				return nil, err
			}
			row[i] = plainValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
}
