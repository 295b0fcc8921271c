package main

import (
	"github.com/spf13/cobra"

	sp "github.com/rdfsql/gosparql"
	"github.com/rdfsql/gosparql/resultset"
)

var describeColumns = []string{"label", "type", "datatype", "nullable", "precision", "scale", "signed", "display_size", "go_type"}

func newDescribeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe QUERY",
		Short: "Run a query and print the metadata of its columns",
		Long: `Run a query and print the column metadata the driver reports for it.

Under the high compatibility level the types are derived from the
first row of the result.

Examples:
  sparqlsh describe --compat high "SELECT ?name ?age WHERE { ?p foaf:name ?name ; foaf:age ?age }"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, opts, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, opts *rootOptions, text string) error {
	ctx := opts.withOptions(cmd.Context())
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

	meta, err := rs.Metadata()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), opts.Format, describeTable(meta))
}

func describeTable(meta *resultset.Metadata) *table {
	t := &table{Columns: describeColumns}
	for _, col := range meta.Columns() {
		var datatype interface{}
		if col.Datatype.Value != "" {
			datatype = col.Datatype.Value
		}
		t.Rows = append(t.Rows, []interface{}{
			col.Label,
			col.TypeName(),
			datatype,
			col.Nullable.String(),
			col.Precision,
			col.Scale,
			col.Signed,
			col.DisplaySize,
			col.GoType.String(),
		})
	}
	return t
}
