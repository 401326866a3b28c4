package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stemsi/unicatalog/internal/catalog"
	"github.com/stemsi/unicatalog/internal/config"
	"github.com/stemsi/unicatalog/internal/dataset"
	"github.com/stemsi/unicatalog/internal/logger"
)

// Loads the dataset once, exactly as the server does at startup, and reports
// either a summary or the load error. Exit status 1 means the server would
// start with the catalog unavailable.
func main() {
	cfg := config.Load()

	var source string
	var timeout time.Duration
	flag.StringVar(&source, "source", cfg.DataSource, "Dataset file path or http(s) URL")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "Load timeout")
	flag.Parse()

	log := logger.Component(logger.Setup(cfg.LogLevel, cfg.LogFormat), "check_dataset")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	records, err := dataset.NewLoader(nil).Load(ctx, source)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			log.Error().Err(loadErr.Err).Str("source", loadErr.Source).Msg("Dataset invalid")
		} else {
			log.Error().Err(err).Msg("Dataset invalid")
		}
		os.Exit(1)
	}

	f := catalog.BuildFacets(records)
	fmt.Printf("source:    %s\n", source)
	fmt.Printf("records:   %d\n", len(records))
	fmt.Printf("cities:    %s\n", strings.Join(f.Cities, ", "))
	fmt.Printf("types:     %s\n", strings.Join(f.Types, ", "))
	fmt.Printf("languages: %s\n", strings.Join(f.Languages, ", "))
}
