package analyzer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gtmops/tagscope/internal/extractor"
)

func TestSynthesizeActionPointsEmptyContainer(t *testing.T) {
	consistency := &Consistency{IDSets: map[extractor.Platform][]string{}}

	points := SynthesizeActionPoints(consistency)

	// No tracking at all still yields the adoption suggestions.
	want := []string{
		"Consider adding Facebook tracking if it is relevant for your analytics needs",
		"Implement Google Analytics 4 (GA4) for future-proof analytics",
		"Consider adding TikTok tracking if it is relevant for your marketing strategy",
	}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("SynthesizeActionPoints() = %v, want %v", points, want)
	}
}

func TestSynthesizeActionPointsConsolidation(t *testing.T) {
	consistency := &Consistency{
		IDSets: map[extractor.Platform][]string{
			extractor.PlatformFacebook:  {"1234567890123", "9876543210987"},
			extractor.PlatformGA4:       {"G-AAA"},
			extractor.PlatformGoogleAds: {"111", "222"},
			extractor.PlatformTikTok:    {"C5D7ABC"},
		},
	}

	points := SynthesizeActionPoints(consistency)

	joined := strings.Join(points, "\n")
	if !strings.Contains(joined, "Facebook: multiple tracking IDs") {
		t.Errorf("missing Facebook consolidation point in %v", points)
	}
	if !strings.Contains(joined, "Google Ads: multiple conversion IDs") {
		t.Errorf("missing Google Ads consolidation point in %v", points)
	}
	if strings.Contains(joined, "GA4: multiple") {
		t.Errorf("single GA4 ID should not trigger consolidation: %v", points)
	}
	if strings.Contains(joined, "Implement Google Analytics 4") {
		t.Errorf("present GA4 should not trigger adoption suggestion: %v", points)
	}
}

func TestSynthesizeActionPointsLegacyUA(t *testing.T) {
	consistency := &Consistency{
		IDSets:          map[extractor.Platform][]string{},
		LegacyUAPresent: true,
	}

	points := SynthesizeActionPoints(consistency)

	found := false
	for _, p := range points {
		if strings.HasPrefix(p, "Universal Analytics:") {
			found = true
		}
	}
	if !found {
		t.Errorf("LegacyUAPresent should add a UA cleanup point: %v", points)
	}
}

func TestSynthesizeActionPointsPausedTags(t *testing.T) {
	consistency := &Consistency{
		IDSets:     map[extractor.Platform][]string{},
		PausedTags: []string{"old pixel", "test tag"},
	}

	points := SynthesizeActionPoints(consistency)

	want := "Paused tags: review and decide on the status of: old pixel, test tag"
	found := false
	for _, p := range points {
		if p == want {
			found = true
		}
	}
	if !found {
		t.Errorf("points = %v, want entry %q", points, want)
	}
}

func TestSynthesizeActionPointsOrderAndDedup(t *testing.T) {
	consistency := &Consistency{IDSets: map[extractor.Platform][]string{}}
	issue := "Google Ads: duplicate conversion tags for ID 123, label abc (\"A\" and \"B\")"

	points := SynthesizeActionPoints(consistency, []string{issue, issue}, []string{issue})

	if points[0] != issue {
		t.Errorf("grouper issues should come first, got %q", points[0])
	}
	count := 0
	for _, p := range points {
		if p == issue {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate issue repeated %d times in %v", count, points)
	}
}
