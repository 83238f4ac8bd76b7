// Package analyzer implements the cross-tag analysis passes: the
// identifier consistency check, the naming-convention assessment and
// the action-point synthesis. All passes are pure transformations over
// the loaded container; none mutates its input.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gtmops/tagscope/internal/extractor"
	"github.com/gtmops/tagscope/internal/gtm"
	"github.com/gtmops/tagscope/internal/resolver"
)

// Consistency is the result of the identifier consistency check: one
// identifier set per platform, the paused tag names and the
// inconsistency findings.
type Consistency struct {
	// IDSets holds the distinct identifiers observed per platform,
	// sorted for deterministic output.
	IDSets map[extractor.Platform][]string `json:"idSets" yaml:"idSets"`
	// PausedTags lists the names of paused tags in container order.
	PausedTags []string `json:"pausedTags" yaml:"pausedTags"`
	// Inconsistencies holds one message per platform whose identifier
	// set has more than one distinct value.
	Inconsistencies []string `json:"inconsistencies" yaml:"inconsistencies"`
	// LegacyUAPresent is set when any Universal Analytics identifier
	// was observed at all. Any UA tag is a finding regardless of
	// cardinality.
	LegacyUAPresent bool `json:"legacyUAPresent" yaml:"legacyUAPresent"`
}

// IDs returns the platform's identifier set, never nil.
func (c *Consistency) IDs(p extractor.Platform) []string {
	return c.IDSets[p]
}

// MixedVariableUsage reports whether a platform's identifier set mixes
// literal IDs with unresolved {{Variable}} references, which may hide a
// real inconsistency behind the indirection.
func (c *Consistency) MixedVariableUsage(p extractor.Platform) bool {
	var literal, indirect bool
	for _, id := range c.IDSets[p] {
		if resolver.IsVariableReference(id) {
			indirect = true
		} else {
			literal = true
		}
	}
	return literal && indirect
}

// Custom template names recognized by the consistency pass.
const (
	facebookTemplateName = "Facebook Pixel"
	tiktokTemplateName   = "TikTok Pixel"
)

// CheckConsistency walks all tags once, dispatching each tag by kind to
// the matching extractors and accumulating distinct identifiers per
// platform. Structured identifier parameters holding constant variable
// references are resolved to their literal; runtime-computed references
// stay verbatim. The pass is independent of the per-platform groupers
// and has no side effects on the container.
func CheckConsistency(container *gtm.Container) *Consistency {
	sets := make(map[extractor.Platform]map[string]struct{}, len(extractor.Platforms))
	for _, p := range extractor.Platforms {
		sets[p] = make(map[string]struct{})
	}

	result := &Consistency{
		IDSets: make(map[extractor.Platform][]string, len(extractor.Platforms)),
	}

	add := func(p extractor.Platform, id string) {
		sets[p][id] = struct{}{}
	}

	for i := range container.Tags {
		tag := &container.Tags[i]

		if tag.Paused {
			result.PausedTags = append(result.PausedTags, tag.DisplayName())
		}

		switch tag.Kind {
		case gtm.KindHTML:
			html := tag.HTML()
			if id, ok := extractor.FacebookIDFromHTML(html); ok {
				add(extractor.PlatformFacebook, id)
			}
			if id, ok := extractor.UniversalAnalyticsID(html); ok {
				add(extractor.PlatformUniversalAnalytics, id)
			}
			if id, ok := extractor.TikTokIDFromHTML(html); ok {
				add(extractor.PlatformTikTok, id)
			}
		case gtm.KindGA4Event, gtm.KindGoogleTag:
			if id, ok := extractor.GA4MeasurementID(tag); ok {
				add(extractor.PlatformGA4, resolver.Value(id, container.Variables))
			}
		case gtm.KindAdsConversion, gtm.KindAdsRemarketing:
			if id, ok := extractor.GoogleAdsConversionID(tag); ok {
				add(extractor.PlatformGoogleAds, resolver.Value(id, container.Variables))
			}
		case gtm.KindUniversalAnalytics:
			// UA property IDs only ever appear embedded in HTML, but the
			// presence of a dedicated UA tag is a legacy finding on its own.
			result.LegacyUAPresent = true
		case gtm.KindCustomTemplate:
			switch name, _ := resolver.TemplateName(tag, container); name {
			case facebookTemplateName:
				if id, ok := extractor.FacebookID(tag); ok {
					add(extractor.PlatformFacebook, resolver.Value(id, container.Variables))
				}
			case tiktokTemplateName:
				if id, ok := extractor.TikTokPixelID(tag); ok {
					add(extractor.PlatformTikTok, resolver.Value(id, container.Variables))
				}
			}
		}
	}

	for _, p := range extractor.Platforms {
		ids := make([]string, 0, len(sets[p]))
		for id := range sets[p] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		result.IDSets[p] = ids

		if len(ids) > 1 {
			result.Inconsistencies = append(result.Inconsistencies, fmt.Sprintf(
				"Multiple %s IDs found: %s", p.DisplayName(), strings.Join(ids, ", ")))
		}
	}

	if len(result.IDSets[extractor.PlatformUniversalAnalytics]) > 0 {
		result.LegacyUAPresent = true
	}

	return result
}
