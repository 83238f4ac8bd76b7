package gtm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantTags int
	}{
		{
			name:    "invalid JSON",
			input:   `{not json`,
			wantErr: ErrInvalidJSON,
		},
		{
			name:    "missing containerVersion",
			input:   `{"exportFormatVersion": 2}`,
			wantErr: ErrMissingContainerVersion,
		},
		{
			name:    "missing tag collection",
			input:   `{"containerVersion": {"container": {"name": "Site"}}}`,
			wantErr: ErrMissingTags,
		},
		{
			name:     "empty tag list",
			input:    `{"containerVersion": {"container": {"name": "Site"}, "tag": []}}`,
			wantTags: 0,
		},
		{
			name: "single tag",
			input: `{"containerVersion": {"container": {"name": "Site"}, "tag": [
				{"name": "GA4 | Pageview", "type": "gaawe"}
			]}}`,
			wantTags: 1,
		},
		{
			name: "malformed tag entries are skipped",
			input: `{"containerVersion": {"container": {"name": "Site"}, "tag": [
				"not a tag",
				42,
				{"name": "FB | Lead", "type": "html"}
			]}}`,
			wantTags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Tags, tt.wantTags)
		})
	}
}

func TestParseKindResolution(t *testing.T) {
	input := `{"containerVersion": {"container": {"name": "Site"}, "tag": [
		{"name": "a", "type": "html"},
		{"name": "b", "type": "gaawe"},
		{"name": "c", "type": "googtag"},
		{"name": "d", "type": "awct"},
		{"name": "e", "type": "sp"},
		{"name": "f", "type": "flc"},
		{"name": "g", "type": "ua"},
		{"name": "h", "type": "cvt_12"},
		{"name": "i", "type": "cvt_184339_45"},
		{"name": "j", "type": "something_else"}
	]}}`

	c, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, c.Tags, 10)

	want := []TagKind{
		KindHTML, KindGA4Event, KindGoogleTag, KindAdsConversion,
		KindAdsRemarketing, KindFloodlight, KindUniversalAnalytics,
		KindCustomTemplate, KindCustomTemplate, KindUnknown,
	}
	for i, kind := range want {
		assert.Equal(t, kind, c.Tags[i].Kind, "tag %s", c.Tags[i].Name)
	}
}

func TestTemplateID(t *testing.T) {
	tests := []struct {
		tagType string
		want    string
		wantOK  bool
	}{
		{"cvt_12", "12", true},
		{"cvt_184339_45", "45", true},
		{"cvt_", "", false},
		{"html", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := TemplateID(tt.tagType)
		assert.Equal(t, tt.wantOK, ok, tt.tagType)
		assert.Equal(t, tt.want, got, tt.tagType)
	}
}

func TestTagParamFirstMatchWins(t *testing.T) {
	tag := Tag{
		Parameter: []Parameter{
			{Key: "conversionId", Value: "111"},
			{Key: "conversionId", Value: "222"},
		},
	}

	got, ok := tag.Param("conversionId")
	require.True(t, ok)
	assert.Equal(t, "111", got)

	_, ok = tag.Param("missing")
	assert.False(t, ok)
	assert.Equal(t, "fallback", tag.ParamOr("missing", "fallback"))
}

func TestParameterNonStringValue(t *testing.T) {
	input := `{"containerVersion": {"tag": [
		{"name": "t", "type": "html", "parameter": [
			{"key": "html", "value": {"nested": true}},
			{"key": "other", "value": "ok"}
		]}
	]}}`

	c, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, c.Tags, 1)

	// Non-string values decode to empty and the lookup still succeeds
	// for the string parameter.
	v, ok := c.Tags[0].Param("html")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "ok", c.Tags[0].ParamOr("other", ""))
}

func TestVariableConstantValue(t *testing.T) {
	tests := []struct {
		name     string
		variable Variable
		want     string
		wantOK   bool
	}{
		{
			name: "constant variable",
			variable: Variable{
				Name: "GA4 ID", Type: "c",
				Parameter: []Parameter{{Key: "value", Value: "G-ABC123"}},
			},
			want:   "G-ABC123",
			wantOK: true,
		},
		{
			name:     "runtime variable cannot be resolved",
			variable: Variable{Name: "DL Value", Type: "v"},
			wantOK:   false,
		},
		{
			name:     "constant without value parameter",
			variable: Variable{Name: "Empty", Type: "c"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.variable.ConstantValue()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(
		`{"containerVersion": {"container": {"name": "Site"}, "tagManagerUrl": "https://tagmanager.google.com/#/container", "tag": []}}`))
	require.NoError(t, err)
	assert.Equal(t, "Site", c.Name)
	assert.Equal(t, "https://tagmanager.google.com/#/container", c.TagManagerURL)
}

func TestContainerLookups(t *testing.T) {
	c := &Container{
		Triggers: []Trigger{
			{TriggerID: "7", Name: "Purchase Complete"},
		},
		CustomTemplates: []CustomTemplate{
			{TemplateID: "12", Name: "Facebook Pixel"},
		},
		Tags: []Tag{
			{Name: "a", Type: "html"},
			{Name: "b", Type: "html"},
			{Name: "c", Type: "gaawe"},
		},
	}

	table := c.TriggerTable()
	assert.Equal(t, "Purchase Complete", table["7"])

	name, ok := c.TemplateName("12")
	assert.True(t, ok)
	assert.Equal(t, "Facebook Pixel", name)

	_, ok = c.TemplateName("99")
	assert.False(t, ok)

	grouped := c.TagsByType()
	assert.Len(t, grouped["html"], 2)
	assert.Len(t, grouped["gaawe"], 1)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, UnnamedTag, (&Tag{}).DisplayName())
	assert.Equal(t, "FB | Lead", (&Tag{Name: "FB | Lead"}).DisplayName())
}
