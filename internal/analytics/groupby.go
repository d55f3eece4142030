package analytics

import (
	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

// TotalLabel is the sentinel categorical value of the synthetic total row
// appended to grouped tables.
const TotalLabel = "TOTAL"

// EditorChatSummary is a display-only grouped row. Tables carrying a TOTAL
// row are terminal: they are never fed back into another aggregation.
type EditorChatSummary struct {
	Editor                   string `json:"editor"`
	TotalChats               int64  `json:"total_chats"`
	TotalEngagedUsers        int64  `json:"total_engaged_users"`
	TotalChatCopyEvents      int64  `json:"total_chat_copy_events"`
	TotalChatInsertionEvents int64  `json:"total_chat_insertion_events"`
}

// ChatByEditor groups chat rows by editor in first-seen order, sums the
// numeric columns, and appends a TOTAL row holding column-wise sums of the
// grouped rows.
func ChatByEditor(rows []usagedomain.ChatRow) []EditorChatSummary {
	index := make(map[string]int)
	var grouped []EditorChatSummary

	for _, row := range rows {
		i, ok := index[row.Editor]
		if !ok {
			i = len(grouped)
			index[row.Editor] = i
			grouped = append(grouped, EditorChatSummary{Editor: row.Editor})
		}
		grouped[i].TotalChats += row.TotalChats
		grouped[i].TotalEngagedUsers += row.TotalEngagedUsers
		grouped[i].TotalChatCopyEvents += row.TotalChatCopyEvents
		grouped[i].TotalChatInsertionEvents += row.TotalChatInsertionEvents
	}

	total := EditorChatSummary{Editor: TotalLabel}
	for _, g := range grouped {
		total.TotalChats += g.TotalChats
		total.TotalEngagedUsers += g.TotalEngagedUsers
		total.TotalChatCopyEvents += g.TotalChatCopyEvents
		total.TotalChatInsertionEvents += g.TotalChatInsertionEvents
	}
	return append(grouped, total)
}

// LanguageCompletionSummary is a display-only grouped row, TOTAL last.
type LanguageCompletionSummary struct {
	Language                string `json:"language"`
	TotalCodeSuggestions    int64  `json:"total_code_suggestions"`
	TotalCodeAcceptances    int64  `json:"total_code_acceptances"`
	TotalCodeLinesSuggested int64  `json:"total_code_lines_suggested"`
	TotalCodeLinesAccepted  int64  `json:"total_code_lines_accepted"`
}

// CompletionsByLanguage groups completion rows by language in first-seen
// order, then appends the TOTAL row.
func CompletionsByLanguage(rows []usagedomain.CompletionRow) []LanguageCompletionSummary {
	index := make(map[string]int)
	var grouped []LanguageCompletionSummary

	for _, row := range rows {
		i, ok := index[row.Language]
		if !ok {
			i = len(grouped)
			index[row.Language] = i
			grouped = append(grouped, LanguageCompletionSummary{Language: row.Language})
		}
		grouped[i].TotalCodeSuggestions += row.TotalCodeSuggestions
		grouped[i].TotalCodeAcceptances += row.TotalCodeAcceptances
		grouped[i].TotalCodeLinesSuggested += row.TotalCodeLinesSuggested
		grouped[i].TotalCodeLinesAccepted += row.TotalCodeLinesAccepted
	}

	total := LanguageCompletionSummary{Language: TotalLabel}
	for _, g := range grouped {
		total.TotalCodeSuggestions += g.TotalCodeSuggestions
		total.TotalCodeAcceptances += g.TotalCodeAcceptances
		total.TotalCodeLinesSuggested += g.TotalCodeLinesSuggested
		total.TotalCodeLinesAccepted += g.TotalCodeLinesAccepted
	}
	return append(grouped, total)
}

// LanguageRate pairs a language with its mean acceptance rate.
type LanguageRate struct {
	Language       string `json:"language"`
	AcceptanceRate Rate   `json:"acceptance_rate"`
}

// AcceptanceRate is acceptances over suggestions as a percentage, undefined
// when the row has no suggestions.
func AcceptanceRate(row usagedomain.CompletionRow) Rate {
	return Percent(float64(row.TotalCodeAcceptances), float64(row.TotalCodeSuggestions))
}

// AcceptanceRateByLanguage averages per-row acceptance rates per language in
// first-seen order. Rows with no suggestions are excluded from the mean's
// denominator, not counted as zero.
func AcceptanceRateByLanguage(rows []usagedomain.CompletionRow) []LanguageRate {
	index := make(map[string]int)
	var order []string
	rates := make(map[string][]Rate)

	for _, row := range rows {
		if _, ok := index[row.Language]; !ok {
			index[row.Language] = len(order)
			order = append(order, row.Language)
		}
		rates[row.Language] = append(rates[row.Language], AcceptanceRate(row))
	}

	out := make([]LanguageRate, 0, len(order))
	for _, lang := range order {
		out = append(out, LanguageRate{Language: lang, AcceptanceRate: MeanRate(rates[lang])})
	}
	return out
}
