// Package grouper produces per-platform summaries of a container's
// tags. Each grouper filters the full tag list down to one platform,
// extracts that platform's identifying fields and flags cross-tag
// duplicates. Tags outside the platform's filter are excluded, not
// reported.
package grouper

import (
	"fmt"

	"github.com/gtmops/tagscope/internal/extractor"
	"github.com/gtmops/tagscope/internal/gtm"
	"github.com/gtmops/tagscope/internal/resolver"
)

// Display sentinels for absent per-tag fields.
const (
	NoID        = "No ID"
	NoLabel     = "No Label"
	NoEventName = "No Event Name"
	NoValue     = "No Value"
	NotFound    = "Not Found"
)

// Issue annotations attached to records that participate in a
// duplicate key.
const (
	IssueDuplicateAdsTag   = "Potential issue: same ID/label, different tag name"
	IssueDuplicateFacebook = "Potential duplicate event tag"
)

// Custom template display names claimed by groupers.
const (
	facebookTemplateName = "Facebook Pixel"
	tiktokTemplateName   = "TikTok Pixel"
)

// GoogleAdsRecord summarizes one Google Ads conversion tag.
type GoogleAdsRecord struct {
	TagName         string `json:"tagName" yaml:"tagName"`
	ConversionID    string `json:"conversionId" yaml:"conversionId"`
	ConversionLabel string `json:"conversionLabel" yaml:"conversionLabel"`
	TriggerNames    string `json:"triggerNames" yaml:"triggerNames"`
	Issue           string `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// GA4Record summarizes one GA4 event tag.
type GA4Record struct {
	TagName       string `json:"tagName" yaml:"tagName"`
	MeasurementID string `json:"measurementId" yaml:"measurementId"`
	EventName     string `json:"eventName" yaml:"eventName"`
	TriggerNames  string `json:"triggerNames" yaml:"triggerNames"`
	Issue         string `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// FacebookRecord summarizes one Facebook Pixel event tag.
type FacebookRecord struct {
	TagName      string `json:"tagName" yaml:"tagName"`
	PixelID      string `json:"pixelId" yaml:"pixelId"`
	EventName    string `json:"eventName" yaml:"eventName"`
	TriggerNames string `json:"triggerNames" yaml:"triggerNames"`
	Issue        string `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// TikTokRecord summarizes one TikTok Pixel tag.
type TikTokRecord struct {
	TagName      string `json:"tagName" yaml:"tagName"`
	PixelID      string `json:"pixelId" yaml:"pixelId"`
	EventName    string `json:"eventName" yaml:"eventName"`
	TriggerNames string `json:"triggerNames" yaml:"triggerNames"`
}

// FloodlightRecord summarizes one Floodlight counter tag. Floodlight
// fields are displayed verbatim with no duplicate detection.
type FloodlightRecord struct {
	TagName      string `json:"tagName" yaml:"tagName"`
	GroupTag     string `json:"groupTag" yaml:"groupTag"`
	ActivityTag  string `json:"activityTag" yaml:"activityTag"`
	AdvertiserID string `json:"advertiserId" yaml:"advertiserId"`
	TriggerNames string `json:"triggerNames" yaml:"triggerNames"`
}

type adsKey struct {
	conversionID    string
	conversionLabel string
}

// GoogleAds groups Google Ads conversion tags and detects duplicates.
// Logical sameness is the (conversionId, conversionLabel) pair; two
// tags sharing a pair under different names is a finding. Duplicates
// are only detectable after seeing all tags, so records written before
// a duplicate is discovered are annotated in a second pass.
func GoogleAds(tags []gtm.Tag, triggers map[string]string) ([]GoogleAdsRecord, []string) {
	var records []GoogleAdsRecord
	var issues []string
	firstSeen := make(map[adsKey]string)
	duplicated := make(map[adsKey]bool)

	for i := range tags {
		tag := &tags[i]
		if tag.Kind != gtm.KindAdsConversion {
			continue
		}
		id, ok := extractor.GoogleAdsConversionID(tag)
		if !ok {
			id = NoID
		}
		label, ok := extractor.GoogleAdsConversionLabel(tag)
		if !ok {
			label = NoLabel
		}
		name := tag.DisplayName()

		key := adsKey{conversionID: id, conversionLabel: label}
		if previous, seen := firstSeen[key]; seen {
			duplicated[key] = true
			issues = append(issues, fmt.Sprintf(
				"Google Ads: duplicate conversion tags for ID %s, label %s (%q and %q)",
				id, label, previous, name))
		} else {
			firstSeen[key] = name
		}

		records = append(records, GoogleAdsRecord{
			TagName:         name,
			ConversionID:    id,
			ConversionLabel: label,
			TriggerNames:    resolver.TriggerNames(tag.FiringTriggerID, triggers),
		})
	}

	// Retroactively annotate every record sharing a duplicated key,
	// including the first occurrence.
	for i := range records {
		key := adsKey{conversionID: records[i].ConversionID, conversionLabel: records[i].ConversionLabel}
		if duplicated[key] {
			records[i].Issue = IssueDuplicateAdsTag
		}
	}

	return records, issues
}

// GA4 groups GA4 event tags. Unlike the pairwise duplicate policy used
// for Google Ads and Facebook, GA4 performs a cross-record check: when
// more than one distinct measurement ID is observed across all GA4
// event tags, every record is annotated.
func GA4(tags []gtm.Tag, triggers map[string]string) ([]GA4Record, []string) {
	distinct := make(map[string]struct{})
	for i := range tags {
		if tags[i].Kind != gtm.KindGA4Event {
			continue
		}
		if id, ok := extractor.GA4MeasurementID(&tags[i]); ok {
			distinct[id] = struct{}{}
		}
	}
	inconsistent := len(distinct) > 1

	var records []GA4Record
	var issues []string
	for i := range tags {
		tag := &tags[i]
		if tag.Kind != gtm.KindGA4Event {
			continue
		}
		id, ok := extractor.GA4MeasurementID(tag)
		if !ok {
			id = NoID
		}
		event, ok := extractor.EventName(tag)
		if !ok {
			event = NoEventName
		}

		record := GA4Record{
			TagName:       tag.DisplayName(),
			MeasurementID: id,
			EventName:     event,
			TriggerNames:  resolver.TriggerNames(tag.FiringTriggerID, triggers),
		}
		if inconsistent {
			record.Issue = fmt.Sprintf("Inconsistent GA4 Measurement ID: %s (found multiple unique IDs)", id)
		}
		records = append(records, record)
	}

	if inconsistent {
		issues = append(issues, fmt.Sprintf(
			"GA4: %d distinct Measurement IDs in use across GA4 event tags", len(distinct)))
	}

	return records, issues
}

type facebookKey struct {
	eventName string
	pixelID   string
}

// Facebook groups Facebook Pixel event tags, claimed through the
// custom-template name. Logical sameness is the (eventName, pixelId)
// pair; duplicate annotation follows the same two-pass shape as
// GoogleAds.
func Facebook(tags []gtm.Tag, triggers map[string]string, container *gtm.Container) ([]FacebookRecord, []string) {
	var records []FacebookRecord
	var issues []string
	firstSeen := make(map[facebookKey]string)
	duplicated := make(map[facebookKey]bool)

	for i := range tags {
		tag := &tags[i]
		if name, ok := resolver.TemplateName(tag, container); !ok || name != facebookTemplateName {
			continue
		}
		pixelID, ok := extractor.FacebookID(tag)
		if !ok {
			pixelID = NotFound
		}
		event, ok := extractor.EventName(tag)
		if !ok {
			event = NoEventName
		}
		name := tag.DisplayName()

		key := facebookKey{eventName: event, pixelID: pixelID}
		if previous, seen := firstSeen[key]; seen {
			duplicated[key] = true
			issues = append(issues, fmt.Sprintf(
				"Facebook: duplicate event tags for event %s, pixel %s (%q and %q)",
				event, pixelID, previous, name))
		} else {
			firstSeen[key] = name
		}

		records = append(records, FacebookRecord{
			TagName:      name,
			PixelID:      pixelID,
			EventName:    event,
			TriggerNames: resolver.TriggerNames(tag.FiringTriggerID, triggers),
		})
	}

	for i := range records {
		key := facebookKey{eventName: records[i].EventName, pixelID: records[i].PixelID}
		if duplicated[key] {
			records[i].Issue = IssueDuplicateFacebook
		}
	}

	return records, issues
}

// TikTok groups TikTok Pixel tags claimed through the custom-template
// name. TikTok has no duplicate policy; the issues list is always
// empty.
func TikTok(tags []gtm.Tag, triggers map[string]string, container *gtm.Container) ([]TikTokRecord, []string) {
	var records []TikTokRecord
	for i := range tags {
		tag := &tags[i]
		if name, ok := resolver.TemplateName(tag, container); !ok || name != tiktokTemplateName {
			continue
		}
		pixelID, ok := extractor.TikTokPixelID(tag)
		if !ok {
			pixelID = NotFound
		}
		event, ok := extractor.EventName(tag)
		if !ok {
			event = NoEventName
		}
		records = append(records, TikTokRecord{
			TagName:      tag.DisplayName(),
			PixelID:      pixelID,
			EventName:    event,
			TriggerNames: resolver.TriggerNames(tag.FiringTriggerID, triggers),
		})
	}
	return records, nil
}

// Floodlight groups Floodlight counter tags. Group tag, activity tag
// and advertiser ID are extracted verbatim; duplicate combinations are
// not checked.
func Floodlight(tags []gtm.Tag, triggers map[string]string) ([]FloodlightRecord, []string) {
	var records []FloodlightRecord
	for i := range tags {
		tag := &tags[i]
		if tag.Kind != gtm.KindFloodlight {
			continue
		}
		records = append(records, FloodlightRecord{
			TagName:      tag.DisplayName(),
			GroupTag:     tag.ParamOr("groupTag", NoValue),
			ActivityTag:  tag.ParamOr("activityTag", NoValue),
			AdvertiserID: tag.ParamOr("advertiserId", NoValue),
			TriggerNames: resolver.TriggerNames(tag.FiringTriggerID, triggers),
		})
	}
	return records, nil
}
