// Package main provides a tool to reset the placement grid and fill the
// database with generated catalog data.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/seed
//	go run ./cmd/seed -books 500 -customers 200
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bookzapp/bookz-server/internal/config"
	"github.com/bookzapp/bookz-server/internal/logger"
	"github.com/bookzapp/bookz-server/internal/seed"
	"github.com/bookzapp/bookz-server/internal/store/postgres"
)

var (
	authors   = flag.Int("authors", 50, "number of authors to create")
	books     = flag.Int("books", 200, "number of books to create")
	customers = flag.Int("customers", 100, "number of customers to create")
	maxCopies = flag.Int("max-copies", 3, "maximum copies per book")
	randSeed  = flag.Int64("seed", 0, "random seed, 0 means time-based")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	ctx := context.Background()
	st, err := postgres.Open(ctx, postgres.Config{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
	}, lg.Logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	source := *randSeed
	if source == 0 {
		source = time.Now().UnixNano()
	}

	opts := seed.DefaultOptions()
	opts.Lines = cfg.Depository.Lines
	opts.Columns = cfg.Depository.Columns
	opts.Shelves = cfg.Depository.Shelves
	opts.Positions = cfg.Depository.Positions
	opts.Authors = *authors
	opts.Books = *books
	opts.Customers = *customers
	opts.MaxCopiesPerBook = *maxCopies

	res, err := seed.New(st, lg.Logger, source).Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded %d slots, %d authors, %d books, %d copies, %d customers\n",
		res.Slots, res.Authors, res.Books, res.Copies, res.Customers)
}
