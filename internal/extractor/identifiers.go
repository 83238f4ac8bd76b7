package extractor

import (
	"regexp"

	"github.com/gtmops/tagscope/internal/gtm"
)

// Identifier patterns for the embedded-script encodings. Facebook pixel
// IDs are 13-17 digit account numbers, UA properties follow the
// UA-<account>-<property> scheme and TikTok pixel codes are opaque
// alphanumeric strings.
var (
	facebookInitPattern  = regexp.MustCompile(`fbq\(\s*['"]init['"]\s*,\s*['"](\d{13,17})['"]`)
	facebookPixelPattern = regexp.MustCompile(`facebook\.com/tr\?id=(\d{13,17})`)
	uaPropertyPattern    = regexp.MustCompile(`UA-\d{4,10}-\d{1,4}`)
	tiktokLoadPattern    = regexp.MustCompile(`ttq\.load\(\s*['"]([A-Za-z0-9]+)['"]\s*\)`)
)

// ga4IDKeys are the known parameter aliases for the GA4 measurement ID,
// in priority order. The canonical key differs between dedicated GA4
// event tags and generic Google tags across schema versions.
var ga4IDKeys = []string{"measurementId", "measurementIdOverride", "tagId"}

// FacebookIDFromHTML matches a Facebook Pixel bootstrap call or a
// tracking pixel URL inside a raw script body.
func FacebookIDFromHTML(html string) (string, bool) {
	if m := facebookInitPattern.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	if m := facebookPixelPattern.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	return "", false
}

// FacebookID extracts a Facebook Pixel ID from a tag. The structured
// pixelId parameter on custom-template tags wins over the embedded
// script encoding; a container may carry the same logical pixel in both
// encodings.
func FacebookID(tag *gtm.Tag) (string, bool) {
	if id, ok := tag.Param("pixelId"); ok && id != "" {
		return id, true
	}
	return FacebookIDFromHTML(tag.HTML())
}

// UniversalAnalyticsID matches a legacy UA property ID inside a raw
// script body. UA identifiers only ever appear embedded in HTML.
func UniversalAnalyticsID(html string) (string, bool) {
	if m := uaPropertyPattern.FindString(html); m != "" {
		return m, true
	}
	return "", false
}

// TikTokIDFromHTML matches a TikTok Pixel bootstrap call inside a raw
// script body.
func TikTokIDFromHTML(html string) (string, bool) {
	if m := tiktokLoadPattern.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	return "", false
}

// TikTokPixelID extracts a TikTok Pixel code from a tag, structured
// parameter first, embedded script second.
func TikTokPixelID(tag *gtm.Tag) (string, bool) {
	if id, ok := tag.Param("pixel_code"); ok && id != "" {
		return id, true
	}
	return TikTokIDFromHTML(tag.HTML())
}

// GA4MeasurementID extracts a GA4 measurement ID from a tag, checking
// the known key aliases in fixed priority order.
func GA4MeasurementID(tag *gtm.Tag) (string, bool) {
	if tag.Kind != gtm.KindGA4Event && tag.Kind != gtm.KindGoogleTag {
		return "", false
	}
	for _, key := range ga4IDKeys {
		if id, ok := tag.Param(key); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// GoogleAdsConversionID extracts the conversion ID from a Google Ads
// conversion or remarketing tag.
func GoogleAdsConversionID(tag *gtm.Tag) (string, bool) {
	if tag.Kind != gtm.KindAdsConversion && tag.Kind != gtm.KindAdsRemarketing {
		return "", false
	}
	if id, ok := tag.Param("conversionId"); ok && id != "" {
		return id, true
	}
	return "", false
}

// GoogleAdsConversionLabel extracts the companion conversion label.
// Labels distinguish conversion actions sharing one conversion ID, so
// duplicate detection keys on the (ID, label) pair.
func GoogleAdsConversionLabel(tag *gtm.Tag) (string, bool) {
	if label, ok := tag.Param("conversionLabel"); ok && label != "" {
		return label, true
	}
	return "", false
}

// EventName extracts a marketing event name from a tag. Facebook
// templates use event or standardEventName, GA4 event tags use
// eventName and TikTok templates use event.
func EventName(tag *gtm.Tag) (string, bool) {
	for _, key := range []string{"event", "standardEventName", "eventName"} {
		if name, ok := tag.Param(key); ok && name != "" {
			return name, true
		}
	}
	return "", false
}
