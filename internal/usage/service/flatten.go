package service

import (
	"fmt"
	"time"

	"github.com/metricdeck/insights/internal/usage/domain"
	"github.com/metricdeck/insights/pkg/timeparse"
)

// flattenRecords walks each record's feature blocks and emits rows in input
// order, preserving nested editor/model/language order. A missing block is
// an empty block. A bad or missing date aborts the whole batch: downstream
// aggregation assumes every row is dated, so a partially dated report would
// silently skew metrics.
func flattenRecords(records []domain.Record) (flatTables, error) {
	out := flatTables{
		summary:     make([]domain.SummaryRow, 0, len(records)),
		chat:        []domain.ChatRow{},
		completions: []domain.CompletionRow{},
	}

	for i, record := range records {
		date, err := timeparse.Parse(record.Date)
		if err != nil {
			return flatTables{}, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidDate, i, err)
		}

		out.summary = append(out.summary, domain.SummaryRow{
			Date:                       date,
			TotalActiveUsers:           record.TotalActiveUsers,
			TotalEngagedUsers:          record.TotalEngagedUsers,
			IDEChatEngagedUsers:        blockEngaged(record.IDEChat),
			IDECompletionsEngagedUsers: blockEngaged(record.IDECompletions),
			DotcomChatEngagedUsers:     blockEngaged(record.DotcomChat),
			DotcomPREngagedUsers:       blockEngaged(record.DotcomPRs),
		})

		out.chat = append(out.chat, chatRows(date, record.IDEChat)...)
		out.completions = append(out.completions, completionRows(date, record.IDECompletions)...)
	}

	return out, nil
}

func blockEngaged(block *domain.FeatureBlock) int64 {
	if block == nil {
		return 0
	}
	return block.TotalEngagedUsers
}

func chatRows(date time.Time, block *domain.FeatureBlock) []domain.ChatRow {
	if block == nil {
		return nil
	}

	var rows []domain.ChatRow
	for _, editor := range block.Editors {
		for _, model := range editor.Models {
			rows = append(rows, domain.ChatRow{
				Date:                     date,
				Editor:                   editor.Name,
				Model:                    model.Name,
				IsCustomModel:            model.IsCustomModel,
				TotalChats:               model.TotalChats,
				TotalEngagedUsers:        model.TotalEngagedUsers,
				TotalChatCopyEvents:      model.TotalChatCopyEvents,
				TotalChatInsertionEvents: model.TotalChatInsertionEvents,
			})
		}
	}
	return rows
}

func completionRows(date time.Time, block *domain.FeatureBlock) []domain.CompletionRow {
	if block == nil {
		return nil
	}

	var rows []domain.CompletionRow
	for _, editor := range block.Editors {
		for _, model := range editor.Models {
			for _, lang := range model.Languages {
				rows = append(rows, domain.CompletionRow{
					Date:                    date,
					Editor:                  editor.Name,
					Model:                   model.Name,
					IsCustomModel:           model.IsCustomModel,
					Language:                lang.Name,
					TotalEngagedUsers:       lang.TotalEngagedUsers,
					TotalCodeAcceptances:    lang.TotalCodeAcceptances,
					TotalCodeSuggestions:    lang.TotalCodeSuggestions,
					TotalCodeLinesAccepted:  lang.TotalCodeLinesAccepted,
					TotalCodeLinesSuggested: lang.TotalCodeLinesSuggested,
				})
			}
		}
	}
	return rows
}
