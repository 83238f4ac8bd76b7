package analyzer

import (
	"reflect"
	"testing"

	"github.com/gtmops/tagscope/internal/extractor"
	"github.com/gtmops/tagscope/internal/gtm"
)

func htmlTag(name, html string) gtm.Tag {
	return gtm.Tag{
		Name: name, Type: "html", Kind: gtm.KindHTML,
		Parameter: []gtm.Parameter{{Key: "html", Value: html}},
	}
}

func TestCheckConsistencySingleIDPerPlatform(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			htmlTag("fb base", `<script>fbq('init', '1234567890123');</script>`),
			{
				Name: "ga4 config", Type: "googtag", Kind: gtm.KindGoogleTag,
				Parameter: []gtm.Parameter{{Key: "tagId", Value: "G-AAA"}},
			},
		},
	}

	result := CheckConsistency(container)

	if got := result.IDs(extractor.PlatformFacebook); !reflect.DeepEqual(got, []string{"1234567890123"}) {
		t.Errorf("Facebook IDs = %v", got)
	}
	if got := result.IDs(extractor.PlatformGA4); !reflect.DeepEqual(got, []string{"G-AAA"}) {
		t.Errorf("GA4 IDs = %v", got)
	}
	if len(result.Inconsistencies) != 0 {
		t.Errorf("single IDs produced inconsistencies: %v", result.Inconsistencies)
	}
	if result.LegacyUAPresent {
		t.Error("LegacyUAPresent set with no UA tags")
	}
}

func TestCheckConsistencyMultipleIDs(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			htmlTag("fb one", `<script>fbq('init', '1234567890123');</script>`),
			htmlTag("fb two", `<script>fbq('init', '9876543210987');</script>`),
		},
	}

	result := CheckConsistency(container)

	ids := result.IDs(extractor.PlatformFacebook)
	if len(ids) != 2 {
		t.Fatalf("Facebook IDs = %v, want 2", ids)
	}
	if len(result.Inconsistencies) != 1 {
		t.Fatalf("Inconsistencies = %v, want 1", result.Inconsistencies)
	}
	want := "Multiple Facebook IDs found: 1234567890123, 9876543210987"
	if result.Inconsistencies[0] != want {
		t.Errorf("Inconsistencies[0] = %q, want %q", result.Inconsistencies[0], want)
	}
}

func TestCheckConsistencyIdempotent(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			htmlTag("fb b", `fbq('init', '9876543210987')`),
			htmlTag("fb a", `fbq('init', '1234567890123')`),
			{
				Name: "ads", Type: "awct", Kind: gtm.KindAdsConversion,
				Parameter: []gtm.Parameter{{Key: "conversionId", Value: "123456"}},
			},
		},
	}

	first := CheckConsistency(container)
	second := CheckConsistency(container)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	// Set ordering is sorted, not insertion order.
	if got := first.IDs(extractor.PlatformFacebook); !reflect.DeepEqual(got, []string{"1234567890123", "9876543210987"}) {
		t.Errorf("Facebook IDs not sorted: %v", got)
	}
}

func TestCheckConsistencyUniversalAnalytics(t *testing.T) {
	t.Run("dedicated UA tag", func(t *testing.T) {
		container := &gtm.Container{
			Tags: []gtm.Tag{{Name: "GA | Pageview", Type: "ua", Kind: gtm.KindUniversalAnalytics}},
		}
		result := CheckConsistency(container)
		if !result.LegacyUAPresent {
			t.Error("dedicated UA tag should set LegacyUAPresent")
		}
		if len(result.Inconsistencies) != 0 {
			t.Errorf("single UA finding is not an inconsistency: %v", result.Inconsistencies)
		}
	})

	t.Run("UA ID embedded in HTML", func(t *testing.T) {
		container := &gtm.Container{
			Tags: []gtm.Tag{htmlTag("legacy", `ga('create', 'UA-12345-1', 'auto');`)},
		}
		result := CheckConsistency(container)
		if !result.LegacyUAPresent {
			t.Error("embedded UA ID should set LegacyUAPresent")
		}
		if got := result.IDs(extractor.PlatformUniversalAnalytics); !reflect.DeepEqual(got, []string{"UA-12345-1"}) {
			t.Errorf("UA IDs = %v", got)
		}
	})
}

func TestCheckConsistencyResolvesConstantVariables(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			{
				Name: "ga4 via const", Type: "gaawe", Kind: gtm.KindGA4Event,
				Parameter: []gtm.Parameter{{Key: "measurementIdOverride", Value: "{{GA4 ID}}"}},
			},
			{
				Name: "ga4 via runtime", Type: "gaawe", Kind: gtm.KindGA4Event,
				Parameter: []gtm.Parameter{{Key: "measurementIdOverride", Value: "{{Lookup Table}}"}},
			},
		},
		Variables: []gtm.Variable{
			{Name: "GA4 ID", Type: "c", Parameter: []gtm.Parameter{{Key: "value", Value: "G-AAA"}}},
			{Name: "Lookup Table", Type: "smm"},
		},
	}

	result := CheckConsistency(container)

	ids := result.IDs(extractor.PlatformGA4)
	if !reflect.DeepEqual(ids, []string{"G-AAA", "{{Lookup Table}}"}) {
		t.Fatalf("GA4 IDs = %v", ids)
	}
	if !result.MixedVariableUsage(extractor.PlatformGA4) {
		t.Error("literal plus runtime reference should report mixed usage")
	}
	if result.MixedVariableUsage(extractor.PlatformFacebook) {
		t.Error("empty set reported mixed usage")
	}
}

func TestCheckConsistencyCustomTemplates(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			{
				Name: "FB | Lead", Type: "cvt_12", Kind: gtm.KindCustomTemplate,
				Parameter: []gtm.Parameter{{Key: "pixelId", Value: "1234567890123"}},
			},
			{
				Name: "TT | View", Type: "cvt_45", Kind: gtm.KindCustomTemplate,
				Parameter: []gtm.Parameter{{Key: "pixel_code", Value: "C5D7ABC"}},
			},
		},
		CustomTemplates: []gtm.CustomTemplate{
			{TemplateID: "12", Name: "Facebook Pixel"},
			{TemplateID: "45", Name: "TikTok Pixel"},
		},
	}

	result := CheckConsistency(container)

	if got := result.IDs(extractor.PlatformFacebook); !reflect.DeepEqual(got, []string{"1234567890123"}) {
		t.Errorf("Facebook IDs = %v", got)
	}
	if got := result.IDs(extractor.PlatformTikTok); !reflect.DeepEqual(got, []string{"C5D7ABC"}) {
		t.Errorf("TikTok IDs = %v", got)
	}
}

func TestCheckConsistencyPausedTags(t *testing.T) {
	container := &gtm.Container{
		Tags: []gtm.Tag{
			{Name: "active", Type: "html", Kind: gtm.KindHTML},
			{Name: "old pixel", Type: "html", Kind: gtm.KindHTML, Paused: true},
			{Type: "html", Kind: gtm.KindHTML, Paused: true},
		},
	}

	result := CheckConsistency(container)

	want := []string{"old pixel", gtm.UnnamedTag}
	if !reflect.DeepEqual(result.PausedTags, want) {
		t.Errorf("PausedTags = %v, want %v", result.PausedTags, want)
	}
}
