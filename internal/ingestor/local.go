package ingestor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalJSONResolver implements SourceResolver for local container
// export files
type LocalJSONResolver struct {
	source string
}

// NewLocalJSONResolver creates a new LocalJSONResolver
func NewLocalJSONResolver(source string) *LocalJSONResolver {
	return &LocalJSONResolver{source: source}
}

// CanResolve checks if this resolver can handle the given source
func (r *LocalJSONResolver) CanResolve(source string) bool {
	// Check if file exists and has a JSON extension
	if _, err := os.Stat(source); err != nil {
		return false
	}

	return strings.ToLower(filepath.Ext(source)) == ".json"
}

// Resolve reads the export file and returns its contents
func (r *LocalJSONResolver) Resolve(ctx context.Context) ([]byte, *SourceMetadata, error) {
	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	info, err := os.Stat(r.source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("not a regular file: %s", r.source)
	}

	content, err := os.ReadFile(r.source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	return content, &SourceMetadata{
		Type:    SourceTypeFile,
		Path:    r.source,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
