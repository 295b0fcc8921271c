// Example: How to connect to an endpoint with the toml file configuration.
// connections.toml lives in SPARQL_HOME (default ~/.sparql) and must not be
// writable by group or others, for example:
//
//	[default]
//	endpoint = "https://query.wikidata.org/sparql"
//	compatibility = "high"
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	sp "github.com/rdfsql/gosparql"
)

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	os.Setenv("SPARQL_HOME", "<The directory path where the toml file exists>")
	os.Setenv("SPARQL_DEFAULT_CONNECTION_NAME", "<Section name>")

	cfg, err := sp.LoadConnectionConfig()
	if err != nil {
		log.Fatalf("failed to create Config, err: %v", err)
	}
	dsn, err := sp.DSN(cfg)
	if err != nil {
		log.Fatalf("failed to create DSN from Config: %v, err: %v", cfg, err)
	}

	db, err := sql.Open("sparql", dsn)
	if err != nil {
		log.Fatalf("failed to connect. %v, err: %v", dsn, err)
	}
	defer db.Close()
	query := "ASK { ?s ?p ?o }"
	rows, err := db.Query(query) // no cancel is allowed
	if err != nil {
		log.Fatalf("failed to run a query. %v, err: %v", query, err)
	}
	defer rows.Close()
	var v bool
	for rows.Next() {
		err := rows.Scan(&v)
		if err != nil {
			log.Fatalf("failed to get result. err: %v", err)
		}
		if !v {
			log.Fatalf("the endpoint holds no triples")
		}
	}
	if rows.Err() != nil {
		fmt.Printf("ERROR: %v\n", rows.Err())
		return
	}
	fmt.Printf("Congrats! You have successfully run %v against the endpoint!\n", query)
}
