package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
)

// Document is a decoded analysis result. Packages holds the "data" array;
// every other top-level field is preserved verbatim in extra. A document
// without a "data" key decodes with HasData false and passes through
// filtering unmodified.
type Document struct {
	Packages []*Package
	HasData  bool

	extra map[string]json.RawMessage
}

// Package is one entry of the "data" array. Reports and Count are the two
// fields filtering touches; the rest of the package is preserved in extra.
// Count is not authoritative on input, it is recomputed after filtering.
type Package struct {
	Reports []*Report
	Count   int

	extra map[string]json.RawMessage
}

// Report is one raw diagnostic finding. File is its file-path attribute,
// empty if absent or not a string. The full original payload is kept in
// fields and written back verbatim when the report survives filtering.
type Report struct {
	File string

	fields map[string]json.RawMessage
}

// NewReport builds a report holding only a file path. Mostly useful in tests.
func NewReport(file string) *Report {
	b, err := json.Marshal(file)
	if err != nil {
		panic(err)
	}

	return &Report{
		File:   file,
		fields: map[string]json.RawMessage{"file": b},
	}
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("analysis result is not an object: %w", err)
	}

	raw, ok := fields["data"]
	if ok {
		d.HasData = true
		if err := json.Unmarshal(raw, &d.Packages); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}

		delete(fields, "data")
	}

	d.extra = fields

	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+1)
	maps.Copy(out, d.extra)

	if d.HasData {
		pkgs := d.Packages
		if pkgs == nil {
			pkgs = []*Package{}
		}

		b, err := json.Marshal(pkgs)
		if err != nil {
			return nil, fmt.Errorf("encode data: %w", err)
		}

		out["data"] = b
	}

	return json.Marshal(out) //nolint:wrapcheck // Marshal of plain map.
}

func (p *Package) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("package is not an object: %w", err)
	}

	// Missing or null raw_reports is treated as an empty list, a malformed
	// package must not abort the run.
	if raw, ok := fields["raw_reports"]; ok {
		if err := json.Unmarshal(raw, &p.Reports); err != nil {
			p.Reports = nil
		}

		delete(fields, "raw_reports")
	}

	if raw, ok := fields["count"]; ok {
		if err := json.Unmarshal(raw, &p.Count); err != nil {
			p.Count = 0
		}

		delete(fields, "count")
	}

	p.extra = fields

	return nil
}

func (p *Package) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.extra)+2)
	maps.Copy(out, p.extra)

	reports := p.Reports
	if reports == nil {
		reports = []*Report{}
	}

	b, err := json.Marshal(reports)
	if err != nil {
		return nil, fmt.Errorf("encode raw_reports: %w", err)
	}

	out["raw_reports"] = b

	b, err = json.Marshal(p.Count)
	if err != nil {
		return nil, fmt.Errorf("encode count: %w", err)
	}

	out["count"] = b

	return json.Marshal(out) //nolint:wrapcheck // Marshal of plain map.
}

func (r *Report) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("report is not an object: %w", err)
	}

	r.fields = fields

	// Missing or non-string file defaults to empty, so the report is only
	// removed by a matcher that matches the empty string.
	if raw, ok := fields["file"]; ok {
		var file string
		if err := json.Unmarshal(raw, &file); err == nil {
			r.File = file
		}
	}

	return nil
}

func (r *Report) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(r.fields) //nolint:wrapcheck // Marshal of plain map.
}

// Decode parses a serialized analysis result.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{}

	dec := json.NewDecoder(r)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}

	return doc, nil
}

// DecodeFile parses the analysis result at path.
func DecodeFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open analysis result: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}

	return nil
}

// EncodeFile writes the document as indented JSON to the file at path.
func (d *Document) EncodeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := d.Encode(f); err != nil {
		f.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}
