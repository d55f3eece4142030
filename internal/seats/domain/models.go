// Package domain defines the seat-allocation input schema and the flat seat
// table derived from it.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Payload is the root seat-allocation object. TotalSeats is authoritative
// input data, independent of how many seat records are present.
type Payload struct {
	TotalSeats int64  `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// Seat is one raw seat record. Timestamps arrive as strings so a missing or
// null last_activity_at ("never active") survives decoding distinctly from
// a zero time.
type Seat struct {
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	LastActivityAt *string `json:"last_activity_at"`

	AssigningTeam *Team     `json:"assigning_team"`
	Assignee      *Assignee `json:"assignee"`

	LastActivityEditor string `json:"last_activity_editor"`
	PlanType           string `json:"plan_type"`
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Assignee struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Row is one flat seat table row. Derived team/user columns are nil when the
// corresponding nested object was absent.
type Row struct {
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
	LastActivityAt *time.Time `json:"last_activity_at"`

	TeamName *string `json:"team_name"`
	TeamID   *int64  `json:"team_id"`

	UserLogin *string `json:"user_login"`
	UserType  *string `json:"user_type"`
	UserID    *int64  `json:"user_id"`

	LastActivityEditor string `json:"last_activity_editor"`
	PlanType           string `json:"plan_type"`

	// Broadcast from the payload's root-level total to every row.
	TotalAvailableSeats int64 `json:"total_available_seats"`
}

// Active reports whether the seat has ever recorded activity.
func (r Row) Active() bool { return r.LastActivityAt != nil }

// Table is the flattened output for one seat payload.
type Table struct {
	ReportID    snowflake.ID `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`

	TotalSeats int64 `json:"total_seats"`
	Rows       []Row `json:"rows"`
}
