package gtm

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error types for container loading
var (
	ErrInvalidJSON             = fmt.Errorf("invalid JSON document")
	ErrMissingContainerVersion = fmt.Errorf("missing containerVersion key")
	ErrMissingTags             = fmt.Errorf("missing tag collection")
)

// exportDocument mirrors the top level of a GTM container export.
type exportDocument struct {
	ContainerVersion *struct {
		Container struct {
			Name string `json:"name"`
		} `json:"container"`
		TagManagerURL  string            `json:"tagManagerUrl"`
		Tag            []json.RawMessage `json:"tag"`
		Trigger        []Trigger         `json:"trigger"`
		Variable       []Variable        `json:"variable"`
		CustomTemplate []CustomTemplate  `json:"customTemplate"`
	} `json:"containerVersion"`
}

// Parse decodes a GTM container export. Missing containerVersion or a
// missing tag collection is a hard validation failure; every other
// irregularity degrades per tag. Malformed tag entries (non-object
// items in the tag array) are skipped rather than failing the
// document.
func Parse(data []byte) (*Container, error) {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if doc.ContainerVersion == nil {
		return nil, ErrMissingContainerVersion
	}
	if doc.ContainerVersion.Tag == nil {
		return nil, ErrMissingTags
	}

	cv := doc.ContainerVersion
	c := &Container{
		Name:            cv.Container.Name,
		TagManagerURL:   cv.TagManagerURL,
		Tags:            make([]Tag, 0, len(cv.Tag)),
		Triggers:        cv.Trigger,
		Variables:       cv.Variable,
		CustomTemplates: cv.CustomTemplate,
	}

	for _, raw := range cv.Tag {
		var tag Tag
		if err := json.Unmarshal(raw, &tag); err != nil {
			// Structural malformation is scoped to the single tag.
			continue
		}
		tag.Kind = KindOf(tag.Type)
		c.Tags = append(c.Tags, tag)
	}

	return c, nil
}

// Decode reads and parses a GTM container export from r.
func Decode(r io.Reader) (*Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read container export: %w", err)
	}
	return Parse(data)
}
