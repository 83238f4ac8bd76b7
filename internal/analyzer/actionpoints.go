package analyzer

import (
	"fmt"
	"strings"

	"github.com/gtmops/tagscope/internal/extractor"
)

// SynthesizeActionPoints converts the consistency findings and any
// grouper issues into a deduplicated, prioritized list of
// human-readable recommendations. Cross-tag duplicate issues come
// first, then per-platform consolidation, legacy cleanup, paused-tag
// review and missing-platform suggestions. Duplicates are removed
// preserving first-occurrence order.
func SynthesizeActionPoints(consistency *Consistency, extraIssues ...[]string) []string {
	var points []string

	for _, issues := range extraIssues {
		points = append(points, issues...)
	}

	multiple := func(p extractor.Platform) bool {
		return len(consistency.IDs(p)) > 1
	}

	if multiple(extractor.PlatformFacebook) {
		points = append(points, "Facebook: multiple tracking IDs in use across tags, consolidate to a single ID")
	}
	if multiple(extractor.PlatformGA4) {
		points = append(points, "GA4: multiple Measurement IDs in use across tags, consolidate to a single ID")
	}
	if multiple(extractor.PlatformGoogleAds) {
		points = append(points, "Google Ads: multiple conversion IDs in use across tags, consolidate to a single ID")
	}
	if multiple(extractor.PlatformTikTok) {
		points = append(points, "TikTok: multiple tracking IDs in use across tags, consolidate to a single ID")
	}

	// Any UA tag is a finding, regardless of identifier cardinality.
	if consistency.LegacyUAPresent {
		points = append(points, "Universal Analytics: review and delete UA tags, they are no longer collecting data")
	}

	if len(consistency.PausedTags) > 0 {
		points = append(points, fmt.Sprintf(
			"Paused tags: review and decide on the status of: %s",
			strings.Join(consistency.PausedTags, ", ")))
	}

	if len(consistency.IDs(extractor.PlatformFacebook)) == 0 {
		points = append(points, "Consider adding Facebook tracking if it is relevant for your analytics needs")
	}
	if len(consistency.IDs(extractor.PlatformGA4)) == 0 {
		points = append(points, "Implement Google Analytics 4 (GA4) for future-proof analytics")
	}
	if len(consistency.IDs(extractor.PlatformTikTok)) == 0 {
		points = append(points, "Consider adding TikTok tracking if it is relevant for your marketing strategy")
	}

	return dedupe(points)
}

// dedupe removes duplicate entries preserving first-occurrence order.
func dedupe(points []string) []string {
	seen := make(map[string]struct{}, len(points))
	out := make([]string, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
