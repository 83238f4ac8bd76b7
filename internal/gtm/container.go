// Package gtm defines the data model for Google Tag Manager container
// exports and the loader that decodes them.
package gtm

import "encoding/json"

// Parameter is a single key/value pair attached to a tag or variable.
// Keys are not unique within a tag; consuming code treats the first
// occurrence of a key as authoritative.
type Parameter struct {
	Type  string `json:"type,omitempty"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UnmarshalJSON tolerates non-string parameter values. GTM exports
// occasionally nest lists or maps under value; those decode to an empty
// string and the parameter is treated as absent by lookups.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string          `json:"type"`
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Type = raw.Type
	p.Key = raw.Key
	p.Value = ""
	if len(raw.Value) > 0 {
		var s string
		if err := json.Unmarshal(raw.Value, &s); err == nil {
			p.Value = s
		}
	}
	return nil
}

// Tag represents one tag configuration in a container.
type Tag struct {
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	Paused          bool        `json:"paused,omitempty"`
	Parameter       []Parameter `json:"parameter,omitempty"`
	FiringTriggerID []string    `json:"firingTriggerId,omitempty"`

	// Kind is resolved once at decode time from Type and drives all
	// downstream dispatch.
	Kind TagKind `json:"-"`
}

// Param returns the value of the first parameter with the given key.
func (t *Tag) Param(key string) (string, bool) {
	for _, p := range t.Parameter {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// ParamOr returns the value of the first parameter with the given key,
// or fallback when the key is absent.
func (t *Tag) ParamOr(key, fallback string) string {
	if v, ok := t.Param(key); ok {
		return v
	}
	return fallback
}

// HTML returns the embedded script body of a custom HTML tag, or the
// empty string for any other tag.
func (t *Tag) HTML() string {
	if t.Kind != KindHTML {
		return ""
	}
	return t.ParamOr("html", "")
}

// DisplayName returns the tag name, or the unnamed sentinel when the
// export carries no name.
func (t *Tag) DisplayName() string {
	if t.Name == "" {
		return UnnamedTag
	}
	return t.Name
}

// UnnamedTag is the display sentinel for tags without a name.
const UnnamedTag = "Unnamed Tag"

// Trigger is a firing condition referenced from tags by ID.
type Trigger struct {
	TriggerID string `json:"triggerId"`
	Name      string `json:"name"`
}

// Variable is a container variable. Only constant variables can be
// statically resolved to a literal value.
type Variable struct {
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Parameter []Parameter `json:"parameter,omitempty"`
}

// constantVariableType is the GTM type code for a constant variable.
const constantVariableType = "c"

// ConstantValue returns the literal value of a constant variable. The
// second return is false for runtime-computed variable types, which
// cannot be resolved from a static export.
func (v *Variable) ConstantValue() (string, bool) {
	if v.Type != constantVariableType {
		return "", false
	}
	for _, p := range v.Parameter {
		if p.Key == "value" {
			return p.Value, true
		}
	}
	return "", false
}

// CustomTemplate is a vendor-supplied tag template definition.
type CustomTemplate struct {
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
}

// Container is the root analysis unit, decoded from a GTM export.
// It is read-only after decoding; no analysis pass mutates it.
type Container struct {
	Name            string
	TagManagerURL   string
	Tags            []Tag
	Triggers        []Trigger
	Variables       []Variable
	CustomTemplates []CustomTemplate
}

// TriggerTable builds the triggerId to display name lookup for this
// container. Built-in triggers are layered on top by the resolver.
func (c *Container) TriggerTable() map[string]string {
	table := make(map[string]string, len(c.Triggers))
	for _, tr := range c.Triggers {
		table[tr.TriggerID] = tr.Name
	}
	return table
}

// TemplateName returns the display name of the custom template with the
// given templateId, or false when no template matches.
func (c *Container) TemplateName(templateID string) (string, bool) {
	for _, tpl := range c.CustomTemplates {
		if tpl.TemplateID == templateID {
			return tpl.Name, true
		}
	}
	return "", false
}

// TagsByType groups the container's tags by raw type code, preserving
// insertion order within each group.
func (c *Container) TagsByType() map[string][]Tag {
	grouped := make(map[string][]Tag)
	for _, tag := range c.Tags {
		grouped[tag.Type] = append(grouped[tag.Type], tag)
	}
	return grouped
}
