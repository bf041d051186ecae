package domain

import (
	"strings"
	"time"
)

// issueDateLayouts are the accepted spellings of an issue date, in order of preference.
var issueDateLayouts = []string{
	IssueDateLayout,
	"2006/01/02",
}

// ParseIssueDate parses a calendar date as extracted from an instrument.
// Surrounding whitespace is ignored. The result is at midnight UTC.
func ParseIssueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range issueDateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
