// Package domain defines the Copilot usage-metrics input schema and the flat
// tables the flattener produces from it.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Record is one day of usage metrics as delivered by the upstream API.
// Every numeric field and every nested block is optional in the source;
// absent values decode to zero values, which is exactly the documented
// default. The flattener never fails on a missing optional field.
type Record struct {
	Date              string `json:"date"`
	TotalActiveUsers  int64  `json:"total_active_users"`
	TotalEngagedUsers int64  `json:"total_engaged_users"`

	IDEChat        *FeatureBlock `json:"copilot_ide_chat"`
	IDECompletions *FeatureBlock `json:"copilot_ide_code_completions"`
	DotcomChat     *FeatureBlock `json:"copilot_dotcom_chat"`
	DotcomPRs      *FeatureBlock `json:"copilot_dotcom_pull_requests"`
}

// FeatureBlock is one optional product surface inside a daily record.
type FeatureBlock struct {
	TotalEngagedUsers int64    `json:"total_engaged_users"`
	Editors           []Editor `json:"editors"`
}

type Editor struct {
	Name   string  `json:"name"`
	Models []Model `json:"models"`
}

// Model carries either chat counters or per-language completion counters,
// depending on which feature block it sits under.
type Model struct {
	Name          string `json:"name"`
	IsCustomModel bool   `json:"is_custom_model"`

	TotalChats               int64 `json:"total_chats"`
	TotalEngagedUsers        int64 `json:"total_engaged_users"`
	TotalChatCopyEvents      int64 `json:"total_chat_copy_events"`
	TotalChatInsertionEvents int64 `json:"total_chat_insertion_events"`

	Languages []Language `json:"languages"`
}

type Language struct {
	Name                    string `json:"name"`
	TotalEngagedUsers       int64  `json:"total_engaged_users"`
	TotalCodeAcceptances    int64  `json:"total_code_acceptances"`
	TotalCodeSuggestions    int64  `json:"total_code_suggestions"`
	TotalCodeLinesAccepted  int64  `json:"total_code_lines_accepted"`
	TotalCodeLinesSuggested int64  `json:"total_code_lines_suggested"`
}

// SummaryRow is one daily-summary table row, one per input record.
type SummaryRow struct {
	Date              time.Time `json:"date"`
	TotalActiveUsers  int64     `json:"total_active_users"`
	TotalEngagedUsers int64     `json:"total_engaged_users"`

	IDEChatEngagedUsers        int64 `json:"ide_chat_engaged_users"`
	IDECompletionsEngagedUsers int64 `json:"ide_completions_engaged_users"`
	DotcomChatEngagedUsers     int64 `json:"dotcom_chat_engaged_users"`
	DotcomPREngagedUsers       int64 `json:"dotcom_pr_engaged_users"`
}

// ChatRow is one chat table row, one per (date, editor, model).
type ChatRow struct {
	Date          time.Time `json:"date"`
	Editor        string    `json:"editor"`
	Model         string    `json:"model"`
	IsCustomModel bool      `json:"is_custom_model"`

	TotalChats               int64 `json:"total_chats"`
	TotalEngagedUsers        int64 `json:"total_engaged_users"`
	TotalChatCopyEvents      int64 `json:"total_chat_copy_events"`
	TotalChatInsertionEvents int64 `json:"total_chat_insertion_events"`
}

// CompletionRow is one completion table row, one per (date, editor, model,
// language).
type CompletionRow struct {
	Date          time.Time `json:"date"`
	Editor        string    `json:"editor"`
	Model         string    `json:"model"`
	IsCustomModel bool      `json:"is_custom_model"`
	Language      string    `json:"language"`

	TotalEngagedUsers       int64 `json:"total_engaged_users"`
	TotalCodeAcceptances    int64 `json:"total_code_acceptances"`
	TotalCodeSuggestions    int64 `json:"total_code_suggestions"`
	TotalCodeLinesAccepted  int64 `json:"total_code_lines_accepted"`
	TotalCodeLinesSuggested int64 `json:"total_code_lines_suggested"`
}

// Tables is the full flattened output for one usage payload. The row slices
// are immutable value objects: rebuilt fresh per ingestion, never mutated
// downstream.
type Tables struct {
	ReportID    snowflake.ID `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`

	Summary     []SummaryRow    `json:"summary"`
	Chat        []ChatRow       `json:"chat"`
	Completions []CompletionRow `json:"completions"`
}
