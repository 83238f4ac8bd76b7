// Package extractor provides functionality to extract platform tracking
// identifiers from GTM tag configurations. Extraction failure is an
// expected, common case and is reported through the boolean return, not
// an error.
package extractor

import (
	"fmt"

	"github.com/gtmops/tagscope/internal/gtm"
)

// Platform identifies a supported marketing platform.
type Platform string

const (
	// PlatformFacebook covers Facebook / Meta Pixel tags
	PlatformFacebook Platform = "facebook"
	// PlatformGA4 covers Google Analytics 4 event and Google tags
	PlatformGA4 Platform = "ga4"
	// PlatformGoogleAds covers Google Ads conversion and remarketing tags
	PlatformGoogleAds Platform = "google-ads"
	// PlatformUniversalAnalytics covers legacy Universal Analytics tags
	PlatformUniversalAnalytics Platform = "universal-analytics"
	// PlatformTikTok covers TikTok Pixel tags
	PlatformTikTok Platform = "tiktok"
)

// Platforms lists the supported platforms in reporting order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformGA4,
	PlatformGoogleAds,
	PlatformUniversalAnalytics,
	PlatformTikTok,
}

// DisplayName returns the human-readable platform name used in findings.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformFacebook:
		return "Facebook"
	case PlatformGA4:
		return "GA4 Measurement"
	case PlatformGoogleAds:
		return "Google Ads"
	case PlatformUniversalAnalytics:
		return "Universal Analytics"
	case PlatformTikTok:
		return "TikTok"
	default:
		return string(p)
	}
}

// ErrUnknownPlatform is returned by Extract for unregistered platforms.
var ErrUnknownPlatform = fmt.Errorf("unknown platform")

// Extract attempts to pull the given platform's tracking identifier out
// of a tag, trying the structured parameter encoding first and falling
// back to pattern matching over any embedded script body. The boolean
// return is false when no identifier is present, which is not an error.
func Extract(platform Platform, tag *gtm.Tag) (string, bool, error) {
	if tag == nil {
		return "", false, nil
	}
	switch platform {
	case PlatformFacebook:
		id, ok := FacebookID(tag)
		return id, ok, nil
	case PlatformGA4:
		id, ok := GA4MeasurementID(tag)
		return id, ok, nil
	case PlatformGoogleAds:
		id, ok := GoogleAdsConversionID(tag)
		return id, ok, nil
	case PlatformUniversalAnalytics:
		id, ok := UniversalAnalyticsID(tag.HTML())
		return id, ok, nil
	case PlatformTikTok:
		id, ok := TikTokPixelID(tag)
		return id, ok, nil
	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
}
