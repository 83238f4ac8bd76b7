package ingestor

import (
	"context"
	"fmt"
	"time"
)

// SourceType represents the type of source being resolved
type SourceType int

const (
	// SourceTypeUnknown represents an unknown source type
	SourceTypeUnknown SourceType = iota
	// SourceTypeFile represents a local container export file
	SourceTypeFile
	// SourceTypeRemote represents a remote HTTP/HTTPS resource
	SourceTypeRemote
)

// SourceMetadata contains information about the resolved source
type SourceMetadata struct {
	// Type is the source type (file, remote)
	Type SourceType
	// Path is the path or URL of the source
	Path string
	// Size is the size of the source in bytes
	Size int64
	// ModTime is the last modification time of the source
	ModTime time.Time
}

// SourceResolver resolves a source into the raw bytes of a container
// export
type SourceResolver interface {
	// CanResolve checks if this resolver can handle the given source
	CanResolve(source string) bool
	// Resolve fetches the source contents
	Resolve(ctx context.Context) ([]byte, *SourceMetadata, error)
}

// SourceResolverFactory returns the appropriate resolver for the
// given source: a local .json file or an HTTP(S) URL.
func SourceResolverFactory(source string) (SourceResolver, error) {
	local := NewLocalJSONResolver(source)
	if local.CanResolve(source) {
		return local, nil
	}

	remote, err := NewRemoteJSONResolver(source, nil)
	if err == nil && remote.CanResolve(source) {
		return remote, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidSource, source)
}
