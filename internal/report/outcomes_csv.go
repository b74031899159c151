package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Keep header order stable; downstream spreadsheets key on it.
var outcomeHeader = []string{
	"TYPE",
	"WP_ID",
	"TITLE",
	"SLUG",
	"STATUS",
	"STRAPI_REF",
}

// Outcome is the result of migrating one post or page.
type Outcome struct {
	Type  string
	WPID  int
	Title string
	Slug  string
	OK    bool
	Ref   string
}

// WriteCSV writes one row per outcome.
func WriteCSV(w io.Writer, outcomes []Outcome) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outcomeHeader); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write(toRow(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(o Outcome) []string {
	status := "failed"
	if o.OK {
		status = "created"
	}
	return []string{
		o.Type,
		strconv.Itoa(o.WPID),
		o.Title,
		o.Slug,
		status,
		o.Ref,
	}
}
