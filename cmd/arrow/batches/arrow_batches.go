// Example: How to export a query result as Arrow records.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/apache/arrow/go/v15/arrow/memory"

	sp "github.com/rdfsql/gosparql"
	"github.com/rdfsql/gosparql/arrowbatches"
)

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	endpoint := os.Getenv("SPARQL_TEST_ENDPOINT")
	if endpoint == "" {
		log.Fatalf("SPARQL_TEST_ENDPOINT environment variable is not set.")
	}
	cfg := &sp.Config{Endpoint: endpoint}
	dsn, err := sp.DSN(cfg)
	if err != nil {
		log.Fatalf("failed to create DSN from Config: %v, err: %v", cfg, err)
	}

	ctx := sp.WithCompatibility(context.Background(), sp.CompatibilityHigh)
	ctx = arrowbatches.WithTimestampUnit(ctx, arrowbatches.UseMicrosecondTimestamp)
	query := "SELECT ?s ?p ?o WHERE { ?s ?p ?o } LIMIT 30000"

	db, err := sql.Open("sparql", dsn)
	if err != nil {
		log.Fatalf("failed to connect. %v, err: %v", dsn, err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		log.Fatalf("cannot create a connection. %v", err)
	}
	defer conn.Close()

	rs, err := sp.QueryResultSet(ctx, conn, query)
	if err != nil {
		log.Fatalf("failed to run a query. %v, err: %v", query, err)
	}
	defer rs.Close()

	recs, err := arrowbatches.Batches(ctx, rs, memory.DefaultAllocator, 5000)
	if err != nil {
		log.Fatalf("failed to export the result. err: %v", err)
	}
	total := arrowbatches.CountRows(recs)
	for i, rec := range recs {
		fmt.Printf("batch %v: %v rows, schema %v\n", i, rec.NumRows(), rec.Schema())
		rec.Release()
	}
	fmt.Printf("exported %v rows in %v batches\n", total, len(recs))
}
