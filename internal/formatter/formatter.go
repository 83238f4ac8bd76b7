// Package formatter renders an audit report as JSON, YAML or tables.
// Formatters contain no analysis logic of their own.
package formatter

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gtmops/tagscope/internal/report"
)

// Formatter defines the interface for formatting a report
type Formatter interface {
	Format(r *report.Report) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats the report as JSON
	TypeJSON Type = "json"
	// TypeYAML formats the report as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats the report as tables
	TypeTable Type = "table"
)

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Table implements table formatting
type Table struct{}

// Format formats the report as JSON
func (j *JSON) Format(r *report.Report) (string, error) {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats the report as YAML
func (y *YAML) Format(r *report.Report) (string, error) {
	bytes, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeJSON, TypeYAML, TypeTable:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown formatter type: %s", s)
	}
}

// NewFormatter creates a new formatter of the specified type
func NewFormatter(t Type) (Formatter, error) {
	switch t {
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", t)
	}
}
