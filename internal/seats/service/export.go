package service

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/metricdeck/insights/internal/seats/domain"
)

// detailColumns is the fixed, human-labeled column order of the seat detail
// export.
var detailColumns = []string{"User", "Team", "Created Date", "Last Activity", "Last Editor", "Plan Type"}

// WriteDetailCSV writes the seat detail view for the given rows. Null-derived
// columns become empty cells.
func WriteDetailCSV(w io.Writer, rows []domain.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailColumns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			stringOrEmpty(row.UserLogin),
			stringOrEmpty(row.TeamName),
			row.CreatedAt.Format(time.RFC3339),
			timeOrEmpty(row.LastActivityAt),
			row.LastActivityEditor,
			row.PlanType,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
