// Package records reads instruments that are already structured.
// The record schema is the one the extraction prompt asks the LLM to emit,
// so a reviewed LLM reply saved to disk can be ingested unchanged.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tarika/internal/core/domain"
)

// Record is the wire form of one instrument.
type Record struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	DocType      string   `json:"docType" yaml:"docType" toml:"docType"`
	IssueDate    string   `json:"issueDate" yaml:"issueDate" toml:"issueDate"`
	DeceasedName string   `json:"deceasedName,omitempty" yaml:"deceasedName,omitempty" toml:"deceasedName,omitempty"`
	Heirs        []Heir   `json:"heirs,omitempty" yaml:"heirs,omitempty" toml:"heirs,omitempty"`
	AgentName    string   `json:"agentName,omitempty" yaml:"agentName,omitempty" toml:"agentName,omitempty"`
	Principals   []string `json:"principals,omitempty" yaml:"principals,omitempty" toml:"principals,omitempty"`
}

// Heir is the wire form of one heir entry.
type Heir struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Relation string `json:"relation,omitempty" yaml:"relation,omitempty" toml:"relation,omitempty"`
	IDNo     string `json:"idNo,omitempty" yaml:"idNo,omitempty" toml:"idNo,omitempty"`
}

// ParseDocType maps a docType value onto a DocumentType.
// The short codes HOSR and POA are accepted alongside the full names.
// Unknown values are returned upper-cased so validation can report them.
func ParseDocType(s string) domain.DocumentType {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch v {
	case "HOSR", string(domain.DocumentTypeInheritance):
		return domain.DocumentTypeInheritance
	case "POA", string(domain.DocumentTypePowerOfAttorney):
		return domain.DocumentTypePowerOfAttorney
	default:
		return domain.DocumentType(v)
	}
}

// Document converts the record. Slices are copied.
func (r *Record) Document() domain.Document {
	doc := domain.Document{
		ID:           strings.TrimSpace(r.ID),
		Type:         ParseDocType(r.DocType),
		IssueDate:    strings.TrimSpace(r.IssueDate),
		DeceasedName: r.DeceasedName,
		AgentName:    r.AgentName,
	}
	if len(r.Heirs) > 0 {
		doc.Heirs = make([]domain.HeirEntry, len(r.Heirs))
		for i, h := range r.Heirs {
			doc.Heirs[i] = domain.HeirEntry{Name: h.Name, Relation: h.Relation, IDNo: h.IDNo}
		}
	}
	if len(r.Principals) > 0 {
		doc.Principals = append([]string(nil), r.Principals...)
	}
	return doc
}

// FromDocument converts a document back to its wire form.
func FromDocument(doc *domain.Document) Record {
	r := Record{
		ID:           doc.ID,
		DocType:      doc.Type.String(),
		IssueDate:    doc.IssueDate,
		DeceasedName: doc.DeceasedName,
		AgentName:    doc.AgentName,
	}
	for _, h := range doc.Heirs {
		r.Heirs = append(r.Heirs, Heir{Name: h.Name, Relation: h.Relation, IDNo: h.IDNo})
	}
	if len(doc.Principals) > 0 {
		r.Principals = append([]string(nil), doc.Principals...)
	}
	return r
}

// Format is a structured record encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrNoRecords is returned when a file holds no records at all.
var ErrNoRecords = errors.New("no records")

// DecodeAll decodes every record in data. JSON and YAML accept a single
// record or a list; TOML accepts a single record or [[documents]] tables.
// Unknown fields are rejected so typos surface instead of silently dropping data.
func DecodeAll(data []byte, format Format) ([]Record, error) {
	var (
		recs []Record
		err  error
	)
	switch format {
	case FormatJSON:
		recs, err = decodeJSON(data)
	case FormatYAML:
		recs, err = decodeYAML(data)
	case FormatTOML:
		recs, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("unknown record format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s records: %w", format, err)
	}
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}
	return recs, nil
}

func decodeJSON(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []Record
		if err := dec.Decode(&recs); err != nil {
			return nil, err
		}
		return recs, nil
	}

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return []Record{rec}, nil
}

func decodeYAML(data []byte) ([]Record, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if node.Content[0].Kind == yaml.SequenceNode {
		var recs []Record
		if err := dec.Decode(&recs); err != nil {
			return nil, err
		}
		return recs, nil
	}

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

// tomlFile is the [[documents]] layout.
type tomlFile struct {
	Documents []Record `toml:"documents"`
}

func decodeTOML(data []byte) ([]Record, error) {
	var probe map[string]any
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if len(probe) == 0 {
		return nil, nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if _, ok := probe["documents"]; ok {
		var file tomlFile
		if err := dec.Decode(&file); err != nil {
			return nil, err
		}
		return file.Documents, nil
	}

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

// EncodeAll encodes recs as a list in the given format, in the layout
// DecodeAll reads back. TOML uses [[documents]] tables.
func EncodeAll(recs []Record, format Format) ([]byte, error) {
	if recs == nil {
		recs = []Record{}
	}
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(tomlFile{Documents: recs})
	default:
		return nil, fmt.Errorf("unknown record format %q", format)
	}
}

// ParseFormat maps a format name onto a Format. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: unknown record format %q (want json, yaml or toml)", domain.ErrInvalidInput, s)
	}
}
