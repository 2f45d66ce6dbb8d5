// Package wrapjson decodes the term-extractor endpoint's legacy response
// encoding: a JSON object serialized, escaped a second time, wrapped in
// <json> tags, and sometimes quoted as a whole. This is a backend quirk,
// not a format; all of the cleanup lives here so callers only ever see a
// flat field map.
package wrapjson

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fields is a decoded term-extraction result: field name to scalar value.
// Values are strings or numbers; anything else the backend emits is coerced
// to its string form. A nil map value means the backend sent null.
type Fields map[string]*string

// Decode recovers a field map from a legacy wrapped response body.
//
// The cleanup steps mirror what the backend actually produces: strip BOM
// and whitespace, drop one layer of outer quotes, strip <json> tags, then
// undo the double escaping before parsing. When the cleaned string still
// is not a JSON object, Decode fails with the raw body preserved in the
// error so the caller can fall back to displaying it verbatim.
func Decode(raw string) (Fields, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))

	if strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`) && len(cleaned) >= 2 {
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.TrimSpace(cleaned)
	if strings.HasPrefix(cleaned, "<json>") && strings.HasSuffix(cleaned, "</json>") {
		cleaned = strings.TrimPrefix(cleaned, "<json>")
		cleaned = strings.TrimSuffix(cleaned, "</json>")
		cleaned = strings.TrimSpace(cleaned)
	}

	// Undo the second escaping pass: \" back to quotes, escaped newlines
	// removed, stray backslashes dropped.
	cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)
	cleaned = strings.ReplaceAll(cleaned, `\n`, "")
	cleaned = strings.ReplaceAll(cleaned, `\`, "")
	cleaned = strings.TrimSpace(cleaned)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("response is not a wrapped JSON object: %w", err)
	}

	fields := make(Fields, len(parsed))
	for key, value := range parsed {
		fields[key] = coerce(value)
	}
	return fields, nil
}

// coerce flattens a decoded JSON value to its display string. Null stays
// nil; non-scalar values are stringified rather than rejected.
func coerce(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(v)
		return &s
	default:
		s := fmt.Sprintf("%v", v)
		return &s
	}
}

// DisplayRows returns the result as ordered (term, value) pairs for
// rendering, dropping the backend's internal "n" counter field and showing
// nulls as "N/A".
func (f Fields) DisplayRows() [][2]string {
	keys := make([]string, 0, len(f))
	for k := range f {
		if k == "n" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		value := "N/A"
		if f[k] != nil {
			value = *f[k]
		}
		rows = append(rows, [2]string{k, value})
	}
	return rows
}
