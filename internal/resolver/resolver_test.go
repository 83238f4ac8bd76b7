package resolver

import (
	"testing"

	"github.com/gtmops/tagscope/internal/gtm"
)

func TestTriggerName(t *testing.T) {
	table := map[string]string{
		"7":          "Purchase Complete",
		"2147479553": "Shadowed By Built-In",
	}

	tests := []struct {
		name      string
		triggerID string
		want      string
	}{
		{"container trigger", "7", "Purchase Complete"},
		{"built-in all pages wins over container table", "2147479553", "All Pages"},
		{"unknown trigger", "42", "Unknown Trigger (ID: 42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriggerName(tt.triggerID, table); got != tt.want {
				t.Errorf("TriggerName(%q) = %q, want %q", tt.triggerID, got, tt.want)
			}
		})
	}
}

func TestTriggerNames(t *testing.T) {
	table := map[string]string{"7": "Purchase Complete"}

	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty yields sentinel", nil, NoTriggers},
		{"single", []string{"7"}, "Purchase Complete"},
		{"joined with unknown", []string{"7", "42"}, "Purchase Complete, Unknown Trigger (ID: 42)"},
		{"built-in without container entry", []string{"2147479553"}, "All Pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriggerNames(tt.ids, table); got != tt.want {
				t.Errorf("TriggerNames(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestVariable(t *testing.T) {
	variables := []gtm.Variable{
		{Name: "GA4 ID", Type: "c", Parameter: []gtm.Parameter{{Key: "value", Value: "G-ABC123"}}},
		{Name: "DL Value", Type: "v"},
	}

	if got, ok := Variable("GA4 ID", variables); !ok || got != "G-ABC123" {
		t.Errorf("Variable() = %q, %v; want constant literal", got, ok)
	}
	if _, ok := Variable("DL Value", variables); ok {
		t.Error("Variable() resolved a runtime-computed variable")
	}
	if _, ok := Variable("Nope", variables); ok {
		t.Error("Variable() resolved a missing variable")
	}
}

func TestValue(t *testing.T) {
	variables := []gtm.Variable{
		{Name: "GA4 ID", Type: "c", Parameter: []gtm.Parameter{{Key: "value", Value: "G-ABC123"}}},
		{Name: "DL Value", Type: "v"},
	}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"literal passes through", "G-XYZ", "G-XYZ"},
		{"constant reference resolves", "{{GA4 ID}}", "G-ABC123"},
		{"runtime reference stays verbatim", "{{DL Value}}", "{{DL Value}}"},
		{"missing reference stays verbatim", "{{Nope}}", "{{Nope}}"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.value, variables); got != tt.want {
				t.Errorf("Value(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestTemplateName(t *testing.T) {
	container := &gtm.Container{
		CustomTemplates: []gtm.CustomTemplate{
			{TemplateID: "12", Name: "Facebook Pixel"},
			{TemplateID: "45", Name: "TikTok Pixel"},
		},
	}

	tests := []struct {
		name   string
		tag    *gtm.Tag
		want   string
		wantOK bool
	}{
		{
			name:   "simple template reference",
			tag:    &gtm.Tag{Type: "cvt_12", Kind: gtm.KindCustomTemplate},
			want:   "Facebook Pixel",
			wantOK: true,
		},
		{
			name:   "account-qualified template reference",
			tag:    &gtm.Tag{Type: "cvt_184339_45", Kind: gtm.KindCustomTemplate},
			want:   "TikTok Pixel",
			wantOK: true,
		},
		{
			name:   "unknown template id",
			tag:    &gtm.Tag{Type: "cvt_99", Kind: gtm.KindCustomTemplate},
			wantOK: false,
		},
		{
			name:   "non template tag",
			tag:    &gtm.Tag{Type: "html", Kind: gtm.KindHTML},
			wantOK: false,
		},
		{
			name:   "nil tag",
			tag:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TemplateName(tt.tag, container)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TemplateName() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsVariableReference(t *testing.T) {
	if !IsVariableReference("{{GA4 ID}}") {
		t.Error("expected reference detection")
	}
	if IsVariableReference("G-ABC123") {
		t.Error("literal detected as reference")
	}
}
