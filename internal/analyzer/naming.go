package analyzer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gtmops/tagscope/internal/gtm"
)

//go:embed conventions.yaml
var conventionsYAMLBytes []byte

// Verdict classifies a tag name against the naming convention.
type Verdict int

const (
	// VerdictMissing means the tag has no usable name.
	VerdictMissing Verdict = iota
	// VerdictWhitelisted means the name bypasses assessment through the
	// configured allow-list.
	VerdictWhitelisted
	// VerdictAcceptable means the name follows the convention.
	VerdictAcceptable
	// VerdictInsufficientParts means a separator is present but the
	// name has fewer than two non-empty segments.
	VerdictInsufficientParts
	// VerdictMissingPrefix means no platform prefix was found but one
	// can be suggested from the tag's type.
	VerdictMissingPrefix
	// VerdictFullNameUsed means the name spells out a platform name
	// instead of using its short prefix.
	VerdictFullNameUsed
	// VerdictInvalid means no prefix was recognized and none could be
	// suggested.
	VerdictInvalid
)

func (v Verdict) String() string {
	switch v {
	case VerdictMissing:
		return "Missing name"
	case VerdictWhitelisted:
		return "Whitelisted"
	case VerdictAcceptable:
		return "Acceptable"
	case VerdictInsufficientParts:
		return "Insufficient parts"
	case VerdictMissingPrefix:
		return "Missing prefix"
	case VerdictFullNameUsed:
		return "Full platform name used"
	case VerdictInvalid:
		return "Invalid platform prefix"
	}
	return "Unknown"
}

// Assessment is the verdict plus a human-readable explanation.
type Assessment struct {
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Detail  string  `json:"detail" yaml:"detail"`
}

// PlatformPrefix pairs a short prefix with the platform it denotes.
// The prefix table is an explicit ordered list: matching is
// first-match-wins in list order, so prefixes that are substrings of
// later entries shadow them.
type PlatformPrefix struct {
	Prefix   string `yaml:"prefix"`
	Platform string `yaml:"platform"`
}

type conventionRules struct {
	Prefixes     []PlatformPrefix  `yaml:"prefixes"`
	TypePrefixes map[string]string `yaml:"typePrefixes"`
}

// defaultRules contains the rules loaded from the embedded YAML. It is
// unexported to prevent modification from other packages.
var defaultRules conventionRules

// validateRules rejects malformed or ambiguous prefix tables at load
// time. Exact duplicate prefixes are an error; overlapping prefixes
// ("GA" and "GA4") are allowed and resolved by list order.
func validateRules(rules conventionRules) error {
	seen := make(map[string]struct{}, len(rules.Prefixes))
	for _, entry := range rules.Prefixes {
		if entry.Prefix == "" {
			return fmt.Errorf("naming rule with empty prefix (platform %q)", entry.Platform)
		}
		if entry.Platform == "" {
			return fmt.Errorf("naming rule %q missing platform name", entry.Prefix)
		}
		key := strings.ToUpper(entry.Prefix)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate naming prefix %q", entry.Prefix)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func loadConventionRules() error {
	var rules conventionRules
	if err := yaml.Unmarshal(conventionsYAMLBytes, &rules); err != nil {
		return fmt.Errorf("failed to parse naming convention YAML: %v", err)
	}
	if err := validateRules(rules); err != nil {
		return fmt.Errorf("invalid naming convention rules: %v", err)
	}
	defaultRules = rules
	return nil
}

func init() {
	if err := loadConventionRules(); err != nil {
		panic(fmt.Sprintf("failed to load naming convention rules: %v", err))
	}
}

// Assessor evaluates tag names against the platform-prefix convention.
type Assessor struct {
	rules     conventionRules
	whitelist map[string]struct{}
}

// NewAssessor creates an Assessor using the embedded rules. Names in
// the whitelist bypass assessment entirely.
func NewAssessor(whitelist []string) *Assessor {
	wl := make(map[string]struct{}, len(whitelist))
	for _, name := range whitelist {
		wl[strings.ToLower(name)] = struct{}{}
	}
	return &Assessor{rules: defaultRules, whitelist: wl}
}

// splitName splits a tag name on the preferred separator: | first,
// then -, else the whole name is a single segment.
func splitName(name string) (parts []string, hasSeparator bool) {
	switch {
	case strings.Contains(name, "|"):
		return strings.Split(name, "|"), true
	case strings.Contains(name, "-"):
		return strings.Split(name, "-"), true
	default:
		return []string{name}, false
	}
}

// matchPrefix scans the ordered prefix table for the first entry the
// segment starts with, case-insensitive.
func (a *Assessor) matchPrefix(segment string) (PlatformPrefix, bool) {
	upper := strings.ToUpper(strings.TrimSpace(segment))
	for _, entry := range a.rules.Prefixes {
		if strings.HasPrefix(upper, strings.ToUpper(entry.Prefix)) {
			return entry, true
		}
	}
	return PlatformPrefix{}, false
}

// replaceFullName substitutes the first occurrence of platform with
// prefix, case-insensitive, producing the corrected name suggestion.
func replaceFullName(name, platform, prefix string) string {
	idx := strings.Index(strings.ToLower(name), strings.ToLower(platform))
	if idx < 0 {
		return name
	}
	return name[:idx] + prefix + name[idx+len(platform):]
}

// nonEmptySegments counts segments with content after trimming.
func nonEmptySegments(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// Assess evaluates a tag name against the convention. It inspects the
// first two segments for a known platform prefix, falls back to
// detecting a spelled-out platform name, then to a type-based prefix
// suggestion. Never fails.
func (a *Assessor) Assess(tagName, tagType string) Assessment {
	if tagName == "" || tagName == gtm.UnnamedTag {
		return Assessment{
			Verdict: VerdictMissing,
			Detail:  "Tag name is missing or unnamed.",
		}
	}

	if _, ok := a.whitelist[strings.ToLower(tagName)]; ok {
		return Assessment{
			Verdict: VerdictWhitelisted,
			Detail:  "Tag name is explicitly allow-listed.",
		}
	}

	parts, hasSeparator := splitName(tagName)

	// A platform prefix may sit in either of the first two segments.
	var matched *PlatformPrefix
	for i := 0; i < len(parts) && i < 2; i++ {
		if entry, ok := a.matchPrefix(parts[i]); ok {
			matched = &entry
			break
		}
	}

	if matched != nil {
		if hasSeparator && nonEmptySegments(parts) < 2 {
			return Assessment{
				Verdict: VerdictInsufficientParts,
				Detail:  "Tag name should have at least 2 parts when using a separator.",
			}
		}
		return Assessment{
			Verdict: VerdictAcceptable,
			Detail:  fmt.Sprintf("Tag name follows the naming convention (%s).", matched.Platform),
		}
	}

	// No prefix: a spelled-out platform name anywhere in the tag name
	// gets a prefix-substitution suggestion.
	lowerName := strings.ToLower(tagName)
	for _, entry := range a.rules.Prefixes {
		if strings.Contains(lowerName, strings.ToLower(entry.Platform)) {
			return Assessment{
				Verdict: VerdictFullNameUsed,
				Detail: fmt.Sprintf("Use the platform prefix instead of the full name, e.g. %q.",
					replaceFullName(tagName, entry.Platform, entry.Prefix)),
			}
		}
	}

	// Still unmatched: suggest a prefix from the tag's type.
	if suggested, ok := a.rules.TypePrefixes[tagType]; ok && suggested != "" {
		return Assessment{
			Verdict: VerdictMissingPrefix,
			Detail:  fmt.Sprintf("No platform prefix found; suggested prefix %q based on tag type.", suggested),
		}
	}

	first := strings.TrimSpace(parts[0])
	return Assessment{
		Verdict: VerdictInvalid,
		Detail:  fmt.Sprintf("%q is not a recognized platform prefix or name.", first),
	}
}

// TypePrefix returns the suggested prefix for a tag type, if any.
func (a *Assessor) TypePrefix(tagType string) (string, bool) {
	p, ok := a.rules.TypePrefixes[tagType]
	return p, ok && p != ""
}
