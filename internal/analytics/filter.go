package analytics

import (
	"time"

	seatsdomain "github.com/metricdeck/insights/internal/seats/domain"
	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

// TeamAll is the categorical filter sentinel meaning "no team filter".
const TeamAll = "All Teams"

// inRange reports whether the calendar day of t falls inside [start, end],
// inclusive on both ends. A zero bound is open.
func inRange(t, start, end time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	if !start.IsZero() && day.Before(start.Truncate(24*time.Hour)) {
		return false
	}
	if !end.IsZero() && day.After(end.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// FilterTables applies one date range to all three usage tables so summary,
// chat and completions stay date-aligned for a view. The input is not
// mutated.
func FilterTables(t *usagedomain.Tables, start, end time.Time) *usagedomain.Tables {
	if t == nil {
		return nil
	}
	return &usagedomain.Tables{
		ReportID:    t.ReportID,
		GeneratedAt: t.GeneratedAt,
		Summary:     FilterSummaryByDate(t.Summary, start, end),
		Chat:        FilterChatByDate(t.Chat, start, end),
		Completions: FilterCompletionsByDate(t.Completions, start, end),
	}
}

func FilterSummaryByDate(rows []usagedomain.SummaryRow, start, end time.Time) []usagedomain.SummaryRow {
	out := make([]usagedomain.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if inRange(row.Date, start, end) {
			out = append(out, row)
		}
	}
	return out
}

func FilterChatByDate(rows []usagedomain.ChatRow, start, end time.Time) []usagedomain.ChatRow {
	out := make([]usagedomain.ChatRow, 0, len(rows))
	for _, row := range rows {
		if inRange(row.Date, start, end) {
			out = append(out, row)
		}
	}
	return out
}

func FilterCompletionsByDate(rows []usagedomain.CompletionRow, start, end time.Time) []usagedomain.CompletionRow {
	out := make([]usagedomain.CompletionRow, 0, len(rows))
	for _, row := range rows {
		if inRange(row.Date, start, end) {
			out = append(out, row)
		}
	}
	return out
}

// FilterSeatsByCreated keeps seats created inside the range, inclusive.
func FilterSeatsByCreated(rows []seatsdomain.Row, start, end time.Time) []seatsdomain.Row {
	out := make([]seatsdomain.Row, 0, len(rows))
	for _, row := range rows {
		if inRange(row.CreatedAt, start, end) {
			out = append(out, row)
		}
	}
	return out
}

// FilterSeatsByTeam keeps seats assigned to the named team. TeamAll (or an
// empty name) keeps everything.
func FilterSeatsByTeam(rows []seatsdomain.Row, team string) []seatsdomain.Row {
	if team == "" || team == TeamAll {
		return rows
	}
	out := make([]seatsdomain.Row, 0, len(rows))
	for _, row := range rows {
		if row.TeamName != nil && *row.TeamName == team {
			out = append(out, row)
		}
	}
	return out
}
