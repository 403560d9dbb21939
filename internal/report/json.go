package report

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"

	"github.com/jgoulah/homeload/pkg/models"
)

// document is the machine-readable form of a report, shared by JSON and YAML
type document struct {
	Appliances []models.ApplianceRecord `json:"appliances" yaml:"appliances"`
	Summary    *models.SummaryRecord    `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func (r *Report) document() document {
	doc := document{Appliances: make([]models.ApplianceRecord, 0, len(r.Entries))}
	for _, e := range r.Entries {
		doc.Appliances = append(doc.Appliances, e.Record())
	}
	if r.Summary != nil {
		rec := r.Summary.Record()
		doc.Summary = &rec
	}
	return doc
}

// WriteYAML writes the entries and summary as a YAML document
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.document()); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes the entries and summary as an indented JSON document
func (r *Report) WriteJSON(w io.Writer) error {
	if err := json.MarshalWrite(w, r.document(), jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
