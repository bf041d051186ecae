package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/tarika/internal/adapters/driven/extraction/records"
)

// scalar is a string field the model may also emit as a number or null.
type scalar string

// UnmarshalJSON accepts a string, a number or null.
func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = scalar(n.String())
	return nil
}

// modelReply is the instrument as the model returns it.
type modelReply struct {
	DocType      string      `json:"docType"`
	IssueDate    string      `json:"issueDate"`
	DeceasedName string      `json:"deceasedName"`
	Heirs        []modelHeir `json:"heirs"`
	AgentName    string      `json:"agentName"`
	Principals   []string    `json:"principals"`
}

type modelHeir struct {
	Name     string `json:"name"`
	Relation scalar `json:"relation"`
	IDNo     scalar `json:"idNo"`
}

// record converts the reply to the structured record form.
func (r *modelReply) record() records.Record {
	rec := records.Record{
		DocType:      r.DocType,
		IssueDate:    r.IssueDate,
		DeceasedName: r.DeceasedName,
		AgentName:    r.AgentName,
		Principals:   r.Principals,
	}
	for _, h := range r.Heirs {
		rec.Heirs = append(rec.Heirs, records.Heir{
			Name:     h.Name,
			Relation: string(h.Relation),
			IDNo:     string(h.IDNo),
		})
	}
	return rec
}
