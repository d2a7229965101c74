package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rewerma/commons-dbutils/async"
	"github.com/rewerma/commons-dbutils/config"
	"github.com/rewerma/commons-dbutils/metrics"
	"github.com/rewerma/commons-dbutils/pool"
	"github.com/rewerma/commons-dbutils/runner"
	"github.com/rewerma/commons-dbutils/stdsql"
)

func main() {
	configPath := flag.String("config", "config.ini", "Path to configuration file")
	query := flag.String("query", "SELECT 1", "Query to run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize metrics
	metrics.Init()

	// Start metrics HTTP server
	go func() {
		http.Handle("/metrics", metrics.Handler())
		log.Printf("Metrics endpoint at http://localhost%s/metrics", cfg.Metrics.Listen)
		if err := http.ListenAndServe(cfg.Metrics.Listen, nil); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	workers := pool.New(cfg.Runner.Workers)
	defer workers.Close()
	log.Printf("Worker pool size %d", workers.Size())

	sync := runner.New(stdsql.NewFactory(db), runner.Config{
		ValidateParameters: cfg.Runner.ValidateParameters,
	})
	r := async.New(sync, workers)

	ctx := context.Background()
	handle := async.Query(ctx, r, *query, func(rows runner.Rows) (int, error) {
		n := 0
		for rows.Next() {
			n++
		}
		return n, rows.Err()
	})

	n, err := handle.Wait()
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	log.Printf("Query returned %d rows", n)
}
