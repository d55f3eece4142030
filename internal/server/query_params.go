package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/pkg/timeparse"
)

// dateRangeFromQuery reads optional inclusive start/end bounds. Zero times
// mean an open bound.
func dateRangeFromQuery(c *gin.Context) (start, end time.Time, err error) {
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		start, err = timeparse.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("start", "invalid_date", err.Error())
		}
	}
	if raw := strings.TrimSpace(c.Query("end")); raw != "" {
		end, err = timeparse.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("end", "invalid_date", err.Error())
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, newValidationError("end", "invalid_range", "end date precedes start date")
	}
	return start, end, nil
}
