package gtm

import "strings"

// TagKind is the closed classification of a tag's type code, resolved
// once at decode time. Downstream analysis dispatches on the kind
// instead of re-parsing the raw type string.
type TagKind int

const (
	// KindUnknown covers type codes with no registered classification.
	KindUnknown TagKind = iota
	// KindHTML is a custom HTML tag ("html"), the carrier for embedded
	// pixel bootstrap scripts.
	KindHTML
	// KindGA4Event is a GA4 event tag ("gaawe").
	KindGA4Event
	// KindGoogleTag is the generic Google tag ("googtag").
	KindGoogleTag
	// KindAdsConversion is a Google Ads conversion tag ("awct").
	KindAdsConversion
	// KindAdsRemarketing is a Google Ads remarketing tag ("sp").
	KindAdsRemarketing
	// KindFloodlight is a Floodlight counter tag ("flc").
	KindFloodlight
	// KindUniversalAnalytics is a legacy Universal Analytics tag ("ua").
	KindUniversalAnalytics
	// KindCustomTemplate is a tag backed by a custom template
	// ("cvt_<templateId>" or "cvt_<accountId>_<templateId>").
	KindCustomTemplate
)

// customTemplatePrefix discriminates custom-template type codes.
const customTemplatePrefix = "cvt_"

var builtinKinds = map[string]TagKind{
	"html":    KindHTML,
	"gaawe":   KindGA4Event,
	"googtag": KindGoogleTag,
	"awct":    KindAdsConversion,
	"sp":      KindAdsRemarketing,
	"flc":     KindFloodlight,
	"ua":      KindUniversalAnalytics,
}

// KindOf classifies a raw tag type code.
func KindOf(tagType string) TagKind {
	if kind, ok := builtinKinds[tagType]; ok {
		return kind
	}
	if strings.HasPrefix(tagType, customTemplatePrefix) {
		return KindCustomTemplate
	}
	return KindUnknown
}

// TemplateID extracts the template reference from a custom-template
// type code. Both the cvt_<templateId> and cvt_<accountId>_<templateId>
// variants resolve to the trailing segment. Returns false for any other
// type code.
func TemplateID(tagType string) (string, bool) {
	if !strings.HasPrefix(tagType, customTemplatePrefix) {
		return "", false
	}
	parts := strings.Split(tagType, "_")
	id := parts[len(parts)-1]
	if id == "" {
		return "", false
	}
	return id, true
}

func (k TagKind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindGA4Event:
		return "ga4-event"
	case KindGoogleTag:
		return "google-tag"
	case KindAdsConversion:
		return "ads-conversion"
	case KindAdsRemarketing:
		return "ads-remarketing"
	case KindFloodlight:
		return "floodlight"
	case KindUniversalAnalytics:
		return "universal-analytics"
	case KindCustomTemplate:
		return "custom-template"
	default:
		return "unknown"
	}
}
