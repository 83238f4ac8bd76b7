// Package ingestor provides functionality for ingesting GTM container
// exports from various sources and running the full audit pipeline
// over them.
package ingestor

import (
	"context"
	"fmt"
	"time"

	"github.com/gtmops/tagscope/internal/formatter"
	"github.com/gtmops/tagscope/internal/gtm"
	"github.com/gtmops/tagscope/internal/logger"
	"github.com/gtmops/tagscope/internal/report"
)

// Options holds configuration for the ingestor
type Options struct {
	// OutputFormat selects the formatter (table, json, yaml)
	OutputFormat string
	// NamingWhitelist lists tag names exempt from naming assessment
	NamingWhitelist []string
}

// DefaultOptions returns the default ingestor options
func DefaultOptions() *Options {
	return &Options{
		OutputFormat: "table",
	}
}

// Ingestor manages the ingestion and analysis of container exports
type Ingestor struct {
	opts *Options
}

// New creates a new Ingestor with the given options
func New(opts *Options) *Ingestor {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Ingestor{
		opts: opts,
	}
}

// Error types for ingestion operations
var (
	ErrInvalidSource = fmt.Errorf("invalid source")
)

// Result represents the outcome of an ingestion operation
type Result struct {
	Source          string
	Success         bool
	Error           error
	Timestamp       int64
	Report          *report.Report
	OutputFormatted string
}

// Ingest resolves the source, decodes the container export and runs
// the audit pipeline. The context cancels source resolution.
func (i *Ingestor) Ingest(ctx context.Context, source string) (*Result, error) {
	if source == "" {
		return nil, ErrInvalidSource
	}

	resolver, err := SourceResolverFactory(source)
	if err != nil {
		return nil, err
	}

	data, metadata, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	container, err := gtm.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load container export: %w", err)
	}

	logger.Debug().Msgf("Loaded container %q with %d tags from %s",
		container.Name, len(container.Tags), metadata.Path)

	rep := report.Build(container, &report.Options{
		Source:          metadata.Path,
		NamingWhitelist: i.opts.NamingWhitelist,
	})

	formatType, err := formatter.ParseType(i.opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	f, err := formatter.NewFormatter(formatType)
	if err != nil {
		return nil, err
	}
	output, err := f.Format(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to format report: %w", err)
	}

	return &Result{
		Source:          metadata.Path,
		Success:         true,
		Timestamp:       time.Now().Unix(),
		Report:          rep,
		OutputFormatted: output,
	}, nil
}
