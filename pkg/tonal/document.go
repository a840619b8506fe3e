package tonal

import "github.com/tidwall/gjson"

// Document is a raw API payload kept as-is. Records are never re-encoded
// through Go structs, so fields Tonal adds or renames survive the export
// untouched.
type Document struct {
	raw string
}

func NewDocument(raw string) Document {
	return Document{raw: raw}
}

func (d Document) Raw() string {
	return d.raw
}

func (d Document) IsZero() bool {
	return d.raw == ""
}

// Get reads a gjson path from the underlying payload.
func (d Document) Get(path string) gjson.Result {
	return gjson.Get(d.raw, path)
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.raw == "" {
		return []byte("null"), nil
	}
	return []byte(d.raw), nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	d.raw = string(data)
	return nil
}
