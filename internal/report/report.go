// Package report assembles the full audit result for one container
// export: the tracking-ID summary, the per-platform tag groups, the
// naming assessment and the synthesized action points.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gtmops/tagscope/internal/analyzer"
	"github.com/gtmops/tagscope/internal/extractor"
	"github.com/gtmops/tagscope/internal/grouper"
	"github.com/gtmops/tagscope/internal/gtm"
	"github.com/gtmops/tagscope/internal/resolver"
)

// Status markers for the tracking-ID summary.
const (
	StatusOK    = "✓"
	StatusIssue = "✗"
)

// Metadata describes the analyzed container and the analysis run.
type Metadata struct {
	ContainerName string `json:"containerName" yaml:"containerName"`
	TagManagerURL string `json:"tagManagerUrl,omitempty" yaml:"tagManagerUrl,omitempty"`
	Source        string `json:"source" yaml:"source"`
	TagCount      int    `json:"tagCount" yaml:"tagCount"`
	Timestamp     int64  `json:"timestamp" yaml:"timestamp"`
}

// PlatformSummary is one row of the tracking-ID summary table.
type PlatformSummary struct {
	Platform string   `json:"platform" yaml:"platform"`
	IDs      []string `json:"ids" yaml:"ids"`
	Status   string   `json:"status" yaml:"status"`
	Issue    string   `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// NamingRecord is the naming-convention assessment for one tag.
type NamingRecord struct {
	TagName      string `json:"tagName" yaml:"tagName"`
	TagType      string `json:"tagType" yaml:"tagType"`
	TriggerNames string `json:"triggerNames" yaml:"triggerNames"`
	Verdict      string `json:"verdict" yaml:"verdict"`
	Detail       string `json:"detail" yaml:"detail"`
}

// TypeCount is one entry of the tag inventory, grouped by raw type.
type TypeCount struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the complete audit output for one container export. It is
// plain data; all rendering lives in the formatter.
type Report struct {
	Metadata        Metadata                   `json:"metadata" yaml:"metadata"`
	TrackingIDs     []PlatformSummary          `json:"trackingIds" yaml:"trackingIds"`
	Inconsistencies []string                   `json:"inconsistencies,omitempty" yaml:"inconsistencies,omitempty"`
	PausedTags      []string                   `json:"pausedTags,omitempty" yaml:"pausedTags,omitempty"`
	GoogleAds       []grouper.GoogleAdsRecord  `json:"googleAds,omitempty" yaml:"googleAds,omitempty"`
	GA4             []grouper.GA4Record        `json:"ga4,omitempty" yaml:"ga4,omitempty"`
	Facebook        []grouper.FacebookRecord   `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	TikTok          []grouper.TikTokRecord     `json:"tiktok,omitempty" yaml:"tiktok,omitempty"`
	Floodlight      []grouper.FloodlightRecord `json:"floodlight,omitempty" yaml:"floodlight,omitempty"`
	Naming          []NamingRecord             `json:"naming" yaml:"naming"`
	TagInventory    []TypeCount                `json:"tagInventory" yaml:"tagInventory"`
	ActionPoints    []string                   `json:"actionPoints" yaml:"actionPoints"`
	Consistency     *analyzer.Consistency      `json:"consistency" yaml:"consistency"`
}

// Options configures report generation.
type Options struct {
	// Source identifies where the container export came from.
	Source string
	// NamingWhitelist lists tag names exempt from naming assessment.
	NamingWhitelist []string
}

// Build runs the full analysis pipeline over a loaded container and
// assembles the report: consistency check, per-platform grouping,
// naming assessment and action-point synthesis. The container is
// treated as read-only throughout.
func Build(container *gtm.Container, opts *Options) *Report {
	if opts == nil {
		opts = &Options{}
	}

	triggers := container.TriggerTable()
	consistency := analyzer.CheckConsistency(container)

	googleAds, adsIssues := grouper.GoogleAds(container.Tags, triggers)
	ga4Records, ga4Issues := grouper.GA4(container.Tags, triggers)
	facebook, fbIssues := grouper.Facebook(container.Tags, triggers, container)
	tiktok, _ := grouper.TikTok(container.Tags, triggers, container)
	floodlight, _ := grouper.Floodlight(container.Tags, triggers)

	r := &Report{
		Metadata: Metadata{
			ContainerName: container.Name,
			TagManagerURL: container.TagManagerURL,
			Source:        opts.Source,
			TagCount:      len(container.Tags),
			Timestamp:     time.Now().Unix(),
		},
		TrackingIDs:     summarizeTrackingIDs(consistency),
		Inconsistencies: consistency.Inconsistencies,
		PausedTags:      consistency.PausedTags,
		GoogleAds:       googleAds,
		GA4:             ga4Records,
		Facebook:        facebook,
		TikTok:          tiktok,
		Floodlight:      floodlight,
		Naming:          assessNaming(container, triggers, opts.NamingWhitelist),
		TagInventory:    inventory(container),
		ActionPoints:    analyzer.SynthesizeActionPoints(consistency, adsIssues, ga4Issues, fbIssues),
		Consistency:     consistency,
	}

	return r
}

// summarizeTrackingIDs builds the per-platform summary rows. Platforms
// with no identifier get a "not detected" row, except Universal
// Analytics, which is only shown when present.
func summarizeTrackingIDs(consistency *analyzer.Consistency) []PlatformSummary {
	var rows []PlatformSummary
	for _, p := range extractor.Platforms {
		ids := consistency.IDs(p)

		if len(ids) == 0 {
			if p == extractor.PlatformUniversalAnalytics {
				continue
			}
			rows = append(rows, PlatformSummary{
				Platform: p.DisplayName(),
				IDs:      nil,
				Status:   StatusIssue,
				Issue:    fmt.Sprintf("No %s ID detected", p.DisplayName()),
			})
			continue
		}

		row := PlatformSummary{
			Platform: p.DisplayName(),
			IDs:      ids,
			Status:   StatusOK,
		}
		var issues []string
		if len(ids) > 1 {
			row.Status = StatusIssue
			issues = append(issues, fmt.Sprintf("Multiple %s IDs found", p.DisplayName()))
		}
		if consistency.MixedVariableUsage(p) {
			row.Status = StatusIssue
			issues = append(issues, "Mix of static and variable IDs found, which may cause tracking inconsistencies")
		}
		row.Issue = strings.Join(issues, " | ")
		rows = append(rows, row)
	}
	return rows
}

// assessNaming evaluates every tag's display name.
func assessNaming(container *gtm.Container, triggers map[string]string, whitelist []string) []NamingRecord {
	assessor := analyzer.NewAssessor(whitelist)
	records := make([]NamingRecord, 0, len(container.Tags))
	for i := range container.Tags {
		tag := &container.Tags[i]
		assessment := assessor.Assess(tag.Name, tag.Type)
		records = append(records, NamingRecord{
			TagName:      tag.DisplayName(),
			TagType:      tag.Type,
			TriggerNames: resolver.TriggerNames(tag.FiringTriggerID, triggers),
			Verdict:      assessment.Verdict.String(),
			Detail:       assessment.Detail,
		})
	}
	return records
}

// inventory counts tags per raw type, sorted by type code.
func inventory(container *gtm.Container) []TypeCount {
	grouped := container.TagsByType()
	types := make([]string, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Strings(types)

	counts := make([]TypeCount, 0, len(types))
	for _, t := range types {
		counts = append(counts, TypeCount{Type: t, Count: len(grouped[t])})
	}
	return counts
}
