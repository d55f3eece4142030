package analytics

import (
	"errors"
	"fmt"

	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

var ErrUnknownMetric = errors.New("unknown_metric")

// Metric names addressable through Metric.
const (
	MetricTotalActiveUsers       = "total_active_users"
	MetricTotalEngagedUsers      = "total_engaged_users"
	MetricTotalChats             = "total_chats"
	MetricTotalCodeSuggestions   = "total_code_suggestions"
	MetricTotalCodeAcceptances   = "total_code_acceptances"
	MetricAvgDailyActiveUsers    = "average_daily_active_users"
	MetricPeakActiveUsers        = "peak_active_users"
	MetricAvgEngagementRate      = "average_engagement_rate"
	MetricEngagementRateDelta    = "engagement_rate_delta"
	MetricAvgChatsPerUser        = "average_chats_per_user"
	MetricAvgAcceptancesPerUser  = "average_acceptances_per_user"
	MetricDotcomChatUsers        = "dotcom_chat_users"
	MetricDotcomPRUsers          = "dotcom_pr_users"
	MetricIDEChatEngagementRatio = "ide_chat_engagement_ratio"
)

// Overview computes every named usage metric for a (filtered) set of tables.
// Keys are the Metric* names; values use the undefined marker where a
// denominator was empty.
func Overview(t *usagedomain.Tables) map[string]Rate {
	var sumActive, sumEngaged, sumIDEChat, sumDotcomChat, sumDotcomPR, peakActive int64
	for _, row := range t.Summary {
		sumActive += row.TotalActiveUsers
		sumEngaged += row.TotalEngagedUsers
		sumIDEChat += row.IDEChatEngagedUsers
		sumDotcomChat += row.DotcomChatEngagedUsers
		sumDotcomPR += row.DotcomPREngagedUsers
		if row.TotalActiveUsers > peakActive {
			peakActive = row.TotalActiveUsers
		}
	}

	var sumChats int64
	for _, row := range t.Chat {
		sumChats += row.TotalChats
	}

	var sumSuggestions, sumAcceptances int64
	for _, row := range t.Completions {
		sumSuggestions += row.TotalCodeSuggestions
		sumAcceptances += row.TotalCodeAcceptances
	}

	days := int64(len(t.Summary))
	peak := Rate{}
	if days > 0 {
		peak = Number(float64(peakActive))
	}

	return map[string]Rate{
		MetricTotalActiveUsers:       Number(float64(sumActive)),
		MetricTotalEngagedUsers:      Number(float64(sumEngaged)),
		MetricTotalChats:             Number(float64(sumChats)),
		MetricTotalCodeSuggestions:   Number(float64(sumSuggestions)),
		MetricTotalCodeAcceptances:   Number(float64(sumAcceptances)),
		MetricAvgDailyActiveUsers:    NewRate(float64(sumActive), float64(days)),
		MetricPeakActiveUsers:        peak,
		MetricAvgEngagementRate:      Percent(float64(sumEngaged), float64(sumActive)),
		MetricEngagementRateDelta:    EngagementDelta(t.Summary),
		MetricAvgChatsPerUser:        NewRate(float64(sumChats), float64(sumActive)),
		MetricAvgAcceptancesPerUser:  NewRate(float64(sumAcceptances), float64(sumActive)),
		MetricDotcomChatUsers:        Number(float64(sumDotcomChat)),
		MetricDotcomPRUsers:          Number(float64(sumDotcomPR)),
		MetricIDEChatEngagementRatio: Percent(float64(sumIDEChat), float64(sumEngaged)),
	}
}

// Metric returns one named metric for the tables.
func Metric(name string, t *usagedomain.Tables) (Rate, error) {
	if v, ok := Overview(t)[name]; ok {
		return v, nil
	}
	return Rate{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}
