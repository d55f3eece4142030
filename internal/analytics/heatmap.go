package analytics

import (
	"time"

	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

// Heatmap holds mean total_active_users bucketed by day-of-week and
// hour-of-day. Cells with no observations are 0, not null, so the display
// grid stays dense.
type Heatmap struct {
	Days   []string    `json:"days"`
	Hours  []int       `json:"hours"`
	Values [][]float64 `json:"values"`
}

var heatmapDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ActivityHeatmap averages total_active_users over all summary rows sharing
// a (day-of-week, hour) pair.
func ActivityHeatmap(rows []usagedomain.SummaryRow) Heatmap {
	dayIndex := make(map[time.Weekday]int, len(heatmapDays))
	for i, d := range heatmapDays {
		dayIndex[d] = i
	}

	var sums, counts [7][24]float64
	for _, row := range rows {
		d := dayIndex[row.Date.Weekday()]
		h := row.Date.Hour()
		sums[d][h] += float64(row.TotalActiveUsers)
		counts[d][h]++
	}

	hm := Heatmap{
		Days:   make([]string, len(heatmapDays)),
		Hours:  make([]int, 24),
		Values: make([][]float64, len(heatmapDays)),
	}
	for i, d := range heatmapDays {
		hm.Days[i] = d.String()
		hm.Values[i] = make([]float64, 24)
		for h := 0; h < 24; h++ {
			if counts[i][h] > 0 {
				hm.Values[i][h] = sums[i][h] / counts[i][h]
			}
		}
	}
	for h := 0; h < 24; h++ {
		hm.Hours[h] = h
	}
	return hm
}
