package formatter

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gtmops/tagscope/internal/report"
)

// newTable creates a table writer with the house style.
func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(nil)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateColumns = true
	t.SetTitle(title)
	return t
}

// Format formats the report as a sequence of tables using
// go-pretty/v6/table. Empty platform groups are omitted.
func (t *Table) Format(r *report.Report) (string, error) {
	var sections []string

	// Metadata table
	metadataTable := newTable("CONTAINER")
	metadataTable.AppendHeader(table.Row{"KEY", "VALUE"})
	metadataTable.AppendRow(table.Row{"NAME", r.Metadata.ContainerName})
	if r.Metadata.TagManagerURL != "" {
		metadataTable.AppendRow(table.Row{"TAG MANAGER URL", r.Metadata.TagManagerURL})
	}
	metadataTable.AppendRow(table.Row{"SOURCE", r.Metadata.Source})
	metadataTable.AppendRow(table.Row{"TAGS", r.Metadata.TagCount})
	metadataTable.AppendRow(table.Row{"TIMESTAMP", r.Metadata.Timestamp})
	sections = append(sections, metadataTable.Render())

	// Tracking ID summary
	if len(r.TrackingIDs) > 0 {
		summaryTable := newTable("DETECTED TRACKING IDS")
		summaryTable.AppendHeader(table.Row{"PLATFORM", "IDS", "STATUS", "ISSUE"})
		for _, row := range r.TrackingIDs {
			ids := strings.Join(row.IDs, ", ")
			if ids == "" {
				ids = "No ID found"
			}
			summaryTable.AppendRow(table.Row{row.Platform, ids, row.Status, row.Issue})
		}
		sections = append(sections, summaryTable.Render())
	}

	// Google Ads conversion tags
	if len(r.GoogleAds) > 0 {
		adsTable := newTable("GOOGLE ADS CONVERSION TAGS")
		adsTable.AppendHeader(table.Row{"TAG NAME", "CONVERSION ID", "LABEL", "TRIGGERS", "ISSUE"})
		for _, rec := range r.GoogleAds {
			adsTable.AppendRow(table.Row{rec.TagName, rec.ConversionID, rec.ConversionLabel, rec.TriggerNames, rec.Issue})
		}
		sections = append(sections, adsTable.Render())
	}

	// GA4 event tags
	if len(r.GA4) > 0 {
		ga4Table := newTable("GA4 EVENT TAGS")
		ga4Table.AppendHeader(table.Row{"TAG NAME", "MEASUREMENT ID", "EVENT", "TRIGGERS", "ISSUE"})
		for _, rec := range r.GA4 {
			ga4Table.AppendRow(table.Row{rec.TagName, rec.MeasurementID, rec.EventName, rec.TriggerNames, rec.Issue})
		}
		sections = append(sections, ga4Table.Render())
	}

	// Facebook pixel tags
	if len(r.Facebook) > 0 {
		fbTable := newTable("FACEBOOK PIXEL TAGS")
		fbTable.AppendHeader(table.Row{"TAG NAME", "PIXEL ID", "EVENT", "TRIGGERS", "ISSUE"})
		for _, rec := range r.Facebook {
			fbTable.AppendRow(table.Row{rec.TagName, rec.PixelID, rec.EventName, rec.TriggerNames, rec.Issue})
		}
		sections = append(sections, fbTable.Render())
	}

	// TikTok pixel tags
	if len(r.TikTok) > 0 {
		ttTable := newTable("TIKTOK PIXEL TAGS")
		ttTable.AppendHeader(table.Row{"TAG NAME", "PIXEL ID", "EVENT", "TRIGGERS"})
		for _, rec := range r.TikTok {
			ttTable.AppendRow(table.Row{rec.TagName, rec.PixelID, rec.EventName, rec.TriggerNames})
		}
		sections = append(sections, ttTable.Render())
	}

	// Floodlight tags
	if len(r.Floodlight) > 0 {
		flTable := newTable("FLOODLIGHT TAGS")
		flTable.AppendHeader(table.Row{"TAG NAME", "GROUP TAG", "ACTIVITY TAG", "ADVERTISER ID", "TRIGGERS"})
		for _, rec := range r.Floodlight {
			flTable.AppendRow(table.Row{rec.TagName, rec.GroupTag, rec.ActivityTag, rec.AdvertiserID, rec.TriggerNames})
		}
		sections = append(sections, flTable.Render())
	}

	// Naming convention assessment
	if len(r.Naming) > 0 {
		namingTable := newTable("TAG NAMING")
		namingTable.AppendHeader(table.Row{"TAG NAME", "TYPE", "TRIGGERS", "VERDICT", "DETAIL"})
		for _, rec := range r.Naming {
			namingTable.AppendRow(table.Row{rec.TagName, rec.TagType, rec.TriggerNames, rec.Verdict, rec.Detail})
		}
		sections = append(sections, namingTable.Render())
	}

	// Tag inventory
	if len(r.TagInventory) > 0 {
		inventoryTable := newTable("TAG INVENTORY")
		inventoryTable.AppendHeader(table.Row{"TYPE", "COUNT"})
		for _, tc := range r.TagInventory {
			inventoryTable.AppendRow(table.Row{tc.Type, tc.Count})
		}
		sections = append(sections, inventoryTable.Render())
	}

	// Action points
	actionTable := newTable("ACTION POINTS")
	actionTable.AppendHeader(table.Row{"#", "RECOMMENDATION"})
	if len(r.ActionPoints) == 0 {
		actionTable.AppendRow(table.Row{"-", "No immediate action required. The setup appears to be consistent."})
	} else {
		for i, point := range r.ActionPoints {
			actionTable.AppendRow(table.Row{i + 1, point})
		}
	}
	sections = append(sections, actionTable.Render())

	return strings.Join(sections, "\n\n") + "\n", nil
}
