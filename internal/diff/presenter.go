package diff

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotSet is the display value for nil/missing/empty-string fields. It is kept
// distinct from a genuine falsy value so reviewers can tell "cleared" from
// "false".
const NotSet = "Not set"

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// Section is one reviewable group of changes. Sections with no changed
// entries are never emitted.
type Section struct {
	Title   string        `json:"title"`
	Entries []ChangeEntry `json:"entries"`
}

// BuildSections computes the grouped change sets an admin reviews before
// approving a registration update. Only changed entries appear, and groups
// where nothing changed are omitted entirely.
func BuildSections(original, updated map[string]any) []Section {
	groups := []struct {
		title string
		specs []FieldSpec
	}{
		{CategoryOrganization, OrganizationFields},
		{CategoryContact, ContactFields},
		{CategorySoftwareSystems, SoftwareSystemFields},
		{CategoryHardware, HardwareFields},
	}

	var sections []Section
	for _, g := range groups {
		var changed []ChangeEntry
		for _, entry := range ComputeChanges(original, updated, g.specs) {
			if entry.Changed {
				changed = append(changed, entry)
			}
		}
		if len(changed) == 0 {
			continue
		}
		sections = append(sections, Section{Title: g.title, Entries: changed})
	}
	return sections
}

// FormatValue renders a raw field value for display according to its type.
func FormatValue(v any, t ValueType) string {
	if isUnset(v) {
		return NotSet
	}

	switch t {
	case TypeBoolean:
		if normalizeBool(v) == "true" {
			return "Yes"
		}
		return "No"
	case TypeArray:
		return strings.ReplaceAll(normalizeArray(v), ",", ", ")
	case TypeCurrency:
		if n, ok := asNumber(v); ok {
			return currencyPrinter.Sprintf("$%.2f", n)
		}
		return fmt.Sprint(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
