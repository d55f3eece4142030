package analytics

import (
	"sort"
	"time"

	seatsdomain "github.com/metricdeck/insights/internal/seats/domain"
)

// SeatOverview summarizes a (filtered) seat table. Unassigned counts against
// the authoritative root-level total, not the row count of this view.
type SeatOverview struct {
	TotalAvailableSeats int64 `json:"total_available_seats"`
	AssignedSeats       int64 `json:"assigned_seats"`
	ActiveUsers         int64 `json:"active_users"`
	InactiveUsers       int64 `json:"inactive_users"`
	UnassignedSeats     int64 `json:"unassigned_seats"`
}

func SeatsOverview(totalSeats int64, rows []seatsdomain.Row) SeatOverview {
	overview := SeatOverview{
		TotalAvailableSeats: totalSeats,
		AssignedSeats:       int64(len(rows)),
	}
	for _, row := range rows {
		if row.Active() {
			overview.ActiveUsers++
		} else {
			overview.InactiveUsers++
		}
	}
	overview.UnassignedSeats = totalSeats - overview.AssignedSeats
	return overview
}

// TeamSummary is one per-team rollup row. Seats without an assigning team
// are left out, matching the categorical grouping on team name.
type TeamSummary struct {
	Team             string    `json:"team"`
	TotalUsers       int64     `json:"total_users"`
	ActiveUsers      int64     `json:"active_users"`
	InactiveUsers    int64     `json:"inactive_users"`
	FirstSeatCreated time.Time `json:"first_seat_created"`
	ActivePercent    Rate      `json:"active_percent"`
}

// TeamSummaries groups seats by team, counts active users via
// last_activity_at, and sorts by total users descending.
func TeamSummaries(rows []seatsdomain.Row) []TeamSummary {
	index := make(map[string]int)
	var grouped []TeamSummary

	for _, row := range rows {
		if row.TeamName == nil {
			continue
		}
		team := *row.TeamName

		i, ok := index[team]
		if !ok {
			i = len(grouped)
			index[team] = i
			grouped = append(grouped, TeamSummary{Team: team, FirstSeatCreated: row.CreatedAt})
		}
		grouped[i].TotalUsers++
		if row.Active() {
			grouped[i].ActiveUsers++
		}
		if row.CreatedAt.Before(grouped[i].FirstSeatCreated) {
			grouped[i].FirstSeatCreated = row.CreatedAt
		}
	}

	for i := range grouped {
		grouped[i].InactiveUsers = grouped[i].TotalUsers - grouped[i].ActiveUsers
		grouped[i].ActivePercent = Percent(float64(grouped[i].ActiveUsers), float64(grouped[i].TotalUsers))
	}

	sort.SliceStable(grouped, func(a, b int) bool {
		return grouped[a].TotalUsers > grouped[b].TotalUsers
	})
	return grouped
}

// ActivityPoint is one day of seat activity.
type ActivityPoint struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// ActivityTimeline buckets seats with recorded activity by the calendar day
// of last_activity_at, ascending. Never-active seats contribute nothing.
func ActivityTimeline(rows []seatsdomain.Row) []ActivityPoint {
	counts := make(map[time.Time]int64)
	for _, row := range rows {
		if row.LastActivityAt == nil {
			continue
		}
		counts[row.LastActivityAt.Truncate(24*time.Hour)]++
	}

	points := make([]ActivityPoint, 0, len(counts))
	for day, count := range counts {
		points = append(points, ActivityPoint{Date: day, Count: count})
	}
	sort.Slice(points, func(a, b int) bool {
		return points[a].Date.Before(points[b].Date)
	})
	return points
}
