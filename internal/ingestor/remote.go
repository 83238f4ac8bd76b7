package ingestor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// defaultHTTPClient is the default HTTP client used by
// RemoteJSONResolver. This can be overridden for testing.
var defaultHTTPClient = http.DefaultClient

// Default timeout for HTTP requests
const defaultHTTPTimeout = 30 * time.Second

// RemoteJSONResolver implements SourceResolver for remote HTTP/HTTPS
// container exports
type RemoteJSONResolver struct {
	source string
	client *http.Client
}

// isValidURL checks if a string is a valid URL
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// NewRemoteJSONResolver creates a new RemoteJSONResolver
func NewRemoteJSONResolver(source string, client *http.Client) (*RemoteJSONResolver, error) {
	if !isValidURL(source) {
		return nil, fmt.Errorf("invalid URL: %s", source)
	}

	// Use provided client or default client if not provided
	if client == nil {
		client = defaultHTTPClient
		if client == nil {
			client = &http.Client{
				Timeout: defaultHTTPTimeout,
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					if len(via) >= 10 {
						return fmt.Errorf("too many redirects")
					}
					return nil
				},
			}
		}
	}

	return &RemoteJSONResolver{
		source: source,
		client: client,
	}, nil
}

// CanResolve checks if this resolver can handle the given source
func (r *RemoteJSONResolver) CanResolve(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Resolve fetches the export over HTTP and returns its contents
func (r *RemoteJSONResolver) Resolve(ctx context.Context) ([]byte, *SourceMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.source, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tagscope/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP request failed with status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return content, &SourceMetadata{
		Type:    SourceTypeRemote,
		Path:    r.source,
		Size:    int64(len(content)),
		ModTime: time.Now(),
	}, nil
}
