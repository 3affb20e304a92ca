package reports

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Params is the raw parameter mapping stored on a task document. Values are
// either strings, lists of strings, or absent/null meaning "no filter".
type Params map[string]interface{}

// String returns the trimmed string value for key, or ok=false when the
// parameter is absent or null
func (p Params) String(key string) (string, bool) {
	raw, exists := p[key]
	if !exists || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// StringList returns the list value for key, or ok=false when the
// parameter is absent or null. BSON decodes arrays as []interface{}.
func (p Params) StringList(key string) ([]string, bool) {
	raw, exists := p[key]
	if !exists || raw == nil {
		return nil, false
	}

	switch v := raw.(type) {
	case []string:
		return v, true
	case []interface{}:
		return stringItems(v)
	case bson.A:
		return stringItems(v)
	default:
		return nil, false
	}
}

// Int returns the integer value for key, or ok=false when the parameter
// is absent, null or not a whole number. BSON decodes numbers as int32,
// int64 or float64 depending on the writer.
func (p Params) Int(key string) (int, bool) {
	raw, exists := p[key]
	if !exists || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func stringItems(items []interface{}) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// FilterEntry is one active-filter line shown in the rendered sheet's
// filter-summary block
type FilterEntry struct {
	Label string
	Value string
}

// dateRangeEntry formats the filter-summary line for an applied date range
func dateRangeEntry(fromStr, toStr string) FilterEntry {
	return FilterEntry{
		Label: "Date Range:",
		Value: fmt.Sprintf("%s to %s", fromStr, toStr),
	}
}
