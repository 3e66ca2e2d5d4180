package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType drives normalization and display formatting for a field.
type ValueType string

const (
	TypeText     ValueType = "text"
	TypeBoolean  ValueType = "boolean"
	TypeArray    ValueType = "array"
	TypeBadge    ValueType = "badge"
	TypeEmail    ValueType = "email"
	TypePhone    ValueType = "phone"
	TypeCurrency ValueType = "currency"
)

// FieldSpec describes one comparable field of a record.
type FieldSpec struct {
	Key   string
	Label string
	Type  ValueType
}

// ChangeEntry is the comparison result for a single FieldSpec. OldValue and
// NewValue keep the raw submitted values; Changed is computed on normalized
// forms so that equivalent representations ("500" vs 500) do not show up as
// noise.
type ChangeEntry struct {
	Field    string    `json:"field"`
	Label    string    `json:"label"`
	OldValue any       `json:"old_value"`
	NewValue any       `json:"new_value"`
	Type     ValueType `json:"type"`
	Changed  bool      `json:"changed"`
}

// ComputeChanges compares original against updated for every FieldSpec and
// returns exactly one ChangeEntry per spec, in spec order. Pure function, no
// I/O; callers filter on Changed.
func ComputeChanges(original, updated map[string]any, specs []FieldSpec) []ChangeEntry {
	entries := make([]ChangeEntry, 0, len(specs))
	for _, spec := range specs {
		oldVal := original[spec.Key]
		newVal := updated[spec.Key]
		entries = append(entries, ChangeEntry{
			Field:    spec.Key,
			Label:    spec.Label,
			OldValue: oldVal,
			NewValue: newVal,
			Type:     spec.Type,
			Changed:  !equivalent(oldVal, newVal, spec.Type),
		})
	}
	return entries
}

// equivalent reports whether two raw values normalize to the same canonical
// form for the given type. nil, missing and empty string are all "unset" and
// equal to each other.
func equivalent(a, b any, t ValueType) bool {
	aNorm, aSet := normalize(a, t)
	bNorm, bSet := normalize(b, t)
	if !aSet && !bSet {
		return true
	}
	if aSet != bSet {
		return false
	}
	return aNorm == bNorm
}

// normalize returns the canonical string form of a value and whether the value
// is set at all.
func normalize(v any, t ValueType) (string, bool) {
	if isUnset(v) {
		return "", false
	}

	switch t {
	case TypeBoolean:
		return normalizeBool(v), true
	case TypeArray:
		return normalizeArray(v), true
	case TypeCurrency:
		if n, ok := asNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64), true
		}
		return strings.TrimSpace(fmt.Sprint(v)), true
	default:
		// Numeric-looking text fields (student FTE counts and the like) are
		// canonicalized so string and number submissions compare equal.
		// Zero-padded identifiers like ZIP "06511" stay literal text.
		if n, ok := asNumber(v); ok && !hasLeadingZero(v) {
			return strconv.FormatFloat(n, 'f', -1, 64), true
		}
		return strings.TrimSpace(fmt.Sprint(v)), true
	}
}

func isUnset(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

func normalizeBool(v any) string {
	switch b := v.(type) {
	case bool:
		return strconv.FormatBool(b)
	case string:
		if parsed, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(b))); err == nil {
			return strconv.FormatBool(parsed)
		}
		return strings.TrimSpace(b)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeArray(v any) string {
	switch arr := v.(type) {
	case []string:
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			parts = append(parts, strings.TrimSpace(item))
		}
		return strings.Join(parts, ",")
	case []any:
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(item)))
		}
		return strings.Join(parts, ",")
	case string:
		// Comma-separated submissions arrive as plain strings.
		parts := strings.Split(arr, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// hasLeadingZero reports whether a string value is a zero-padded number,
// which must compare as an identifier rather than a quantity.
func hasLeadingZero(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

// asNumber coerces JSON numbers and numeric strings to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
