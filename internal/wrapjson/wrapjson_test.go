package wrapjson

import "testing"

func strval(f Fields, key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	return *v
}

func TestDecodeTagWrapped(t *testing.T) {
	raw := "<json>\n{\"Device\":\"Forceps\"}\n</json>"

	fields, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strval(fields, "Device"); got != "Forceps" {
		t.Errorf("Device: got %q, want %q", got, "Forceps")
	}
	if len(fields) != 1 {
		t.Errorf("expected exactly one field, got %d", len(fields))
	}
}

func TestDecodeQuotedAndEscaped(t *testing.T) {
	// Outer quotes plus a second escaping pass, the way the backend
	// actually returns term extraction results.
	raw := `"<json>\n{\"Device\":\"Forceps\",\"Technique\":\"Laparoscopic\"}\n</json>"`

	fields, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strval(fields, "Device"); got != "Forceps" {
		t.Errorf("Device: got %q, want %q", got, "Forceps")
	}
	if got := strval(fields, "Technique"); got != "Laparoscopic" {
		t.Errorf("Technique: got %q, want %q", got, "Laparoscopic")
	}
}

func TestDecodePlainObject(t *testing.T) {
	fields, err := Decode(`{"Sample Size": 42, "Country": null, "Blinded": true}`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strval(fields, "Sample Size"); got != "42" {
		t.Errorf("Sample Size: got %q, want %q", got, "42")
	}
	if fields["Country"] != nil {
		t.Errorf("Country: expected nil for null, got %v", fields["Country"])
	}
	if got := strval(fields, "Blinded"); got != "true" {
		t.Errorf("Blinded: got %q, want %q", got, "true")
	}
}

func TestDecodeBOM(t *testing.T) {
	fields, err := Decode("\uFEFF  {\"Device\":\"Stent\"}  ")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := strval(fields, "Device"); got != "Stent" {
		t.Errorf("Device: got %q, want %q", got, "Stent")
	}
}

func TestDecodeNotAnObject(t *testing.T) {
	for _, raw := range []string{"", "just some prose", `["a","b"]`, "<json>not json</json>"} {
		if _, err := Decode(raw); err == nil {
			t.Errorf("Decode(%q): expected error, got none", raw)
		}
	}
}

func TestDisplayRows(t *testing.T) {
	forceps := "Forceps"
	fields := Fields{
		"Device":  &forceps,
		"Country": nil,
		"n":       &forceps, // internal counter, never displayed
	}

	rows := fields.DisplayRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	// Rows are sorted by term name.
	if rows[0][0] != "Country" || rows[0][1] != "N/A" {
		t.Errorf("row 0: got %v", rows[0])
	}
	if rows[1][0] != "Device" || rows[1][1] != "Forceps" {
		t.Errorf("row 1: got %v", rows[1])
	}
}
