// Package resolver maps the indirect references found in GTM tag
// configurations (trigger IDs, variable references, custom-template
// type codes) to display values. Every lookup degrades to a sentinel or
// placeholder string; resolution never fails.
package resolver

import (
	"fmt"
	"strings"

	"github.com/gtmops/tagscope/internal/gtm"
)

// NoTriggers is the display sentinel for tags with no firing triggers.
const NoTriggers = "No Triggers"

// triggerNameDelimiter joins multiple trigger names into one display string.
const triggerNameDelimiter = ", "

// builtInTriggers maps GTM's built-in pseudo trigger IDs to display
// names. Built-in triggers never appear in the container's own trigger
// list and take precedence over it.
var builtInTriggers = map[string]string{
	"2147479553": "All Pages",
}

// TriggerName resolves a single trigger ID to a display name. Built-in
// triggers win over the container's trigger table; IDs present in
// neither render as a placeholder.
func TriggerName(triggerID string, table map[string]string) string {
	if name, ok := builtInTriggers[triggerID]; ok {
		return name
	}
	if name, ok := table[triggerID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Trigger (ID: %s)", triggerID)
}

// TriggerNames resolves a tag's firing trigger IDs to a joined display
// string. An empty ID list yields the NoTriggers sentinel.
func TriggerNames(triggerIDs []string, table map[string]string) string {
	if len(triggerIDs) == 0 {
		return NoTriggers
	}
	names := make([]string, 0, len(triggerIDs))
	for _, id := range triggerIDs {
		names = append(names, TriggerName(id, table))
	}
	return strings.Join(names, triggerNameDelimiter)
}

// Variable looks up a container variable by name and returns its
// literal value when the variable is a statically resolvable constant.
// Runtime-computed variables return false; callers keep displaying the
// raw {{name}} reference.
func Variable(name string, variables []gtm.Variable) (string, bool) {
	for i := range variables {
		if variables[i].Name == name {
			return variables[i].ConstantValue()
		}
	}
	return "", false
}

// IsVariableReference reports whether a parameter value is an indirect
// {{variableName}} reference.
func IsVariableReference(value string) bool {
	return strings.HasPrefix(value, "{{") && strings.HasSuffix(value, "}}")
}

// Value resolves a parameter value: indirect constant references
// resolve to their literal, everything else (literals and unresolvable
// references alike) passes through verbatim.
func Value(value string, variables []gtm.Variable) string {
	if !IsVariableReference(value) {
		return value
	}
	name := strings.TrimSuffix(strings.TrimPrefix(value, "{{"), "}}")
	if literal, ok := Variable(name, variables); ok {
		return literal
	}
	return value
}

// TemplateName resolves a custom-template tag's type code to the
// template's display name. This is the dispatch key platform groupers
// use to claim opaque custom-template tags. Returns false when the tag
// is not template-backed or no template definition matches.
func TemplateName(tag *gtm.Tag, container *gtm.Container) (string, bool) {
	if tag == nil || container == nil || tag.Kind != gtm.KindCustomTemplate {
		return "", false
	}
	templateID, ok := gtm.TemplateID(tag.Type)
	if !ok {
		return "", false
	}
	return container.TemplateName(templateID)
}
