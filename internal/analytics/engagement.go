package analytics

import (
	"time"

	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

// EngagementRate is engaged over active as a percentage, undefined when
// there are no active users.
func EngagementRate(engaged, active int64) Rate {
	return Percent(float64(engaged), float64(active))
}

// DailyEngagementRow is one row of the per-date engagement table.
type DailyEngagementRow struct {
	Date                       time.Time `json:"date"`
	TotalActiveUsers           int64     `json:"total_active_users"`
	TotalEngagedUsers          int64     `json:"total_engaged_users"`
	IDEChatEngagedUsers        int64     `json:"ide_chat_engaged_users"`
	IDECompletionsEngagedUsers int64     `json:"ide_completions_engaged_users"`
	ChatEngagementRate         Rate      `json:"chat_engagement_rate"`
	CodeEngagementRate         Rate      `json:"code_engagement_rate"`
}

// DailyEngagement derives per-date feature engagement rates from the summary
// table, preserving row order.
func DailyEngagement(rows []usagedomain.SummaryRow) []DailyEngagementRow {
	out := make([]DailyEngagementRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, DailyEngagementRow{
			Date:                       row.Date,
			TotalActiveUsers:           row.TotalActiveUsers,
			TotalEngagedUsers:          row.TotalEngagedUsers,
			IDEChatEngagedUsers:        row.IDEChatEngagedUsers,
			IDECompletionsEngagedUsers: row.IDECompletionsEngagedUsers,
			ChatEngagementRate:         EngagementRate(row.IDEChatEngagedUsers, row.TotalActiveUsers),
			CodeEngagementRate:         EngagementRate(row.IDECompletionsEngagedUsers, row.TotalActiveUsers),
		})
	}
	return out
}

// EngagementDelta is the percentage-point change in engagement rate between
// the first and last row of a date-ordered summary. Undefined with fewer
// than two rows, or when either endpoint has no active users: a delta
// against nothing is not zero.
func EngagementDelta(rows []usagedomain.SummaryRow) Rate {
	if len(rows) < 2 {
		return Rate{}
	}
	first := EngagementRate(rows[0].TotalEngagedUsers, rows[0].TotalActiveUsers)
	last := EngagementRate(rows[len(rows)-1].TotalEngagedUsers, rows[len(rows)-1].TotalActiveUsers)
	if !first.Valid || !last.Valid {
		return Rate{}
	}
	return Rate{Value: last.Value - first.Value, Valid: true}
}
