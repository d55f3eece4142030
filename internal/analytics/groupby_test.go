package analytics

import (
	"testing"

	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatByEditorTotalRow(t *testing.T) {
	rows := []usagedomain.ChatRow{
		{Editor: "A", TotalChats: 10},
		{Editor: "A", TotalChats: 20},
		{Editor: "B", TotalChats: 5},
		{Editor: "A", TotalChats: 30},
	}

	grouped := ChatByEditor(rows)
	require.Len(t, grouped, 3)

	assert.Equal(t, "A", grouped[0].Editor)
	assert.Equal(t, int64(60), grouped[0].TotalChats)
	assert.Equal(t, "B", grouped[1].Editor)
	assert.Equal(t, int64(5), grouped[1].TotalChats)

	total := grouped[len(grouped)-1]
	assert.Equal(t, TotalLabel, total.Editor)
	assert.Equal(t, int64(65), total.TotalChats)
}

func TestChatByEditorTotalIndependentOfOrder(t *testing.T) {
	forward := []usagedomain.ChatRow{
		{Editor: "A", TotalChats: 10},
		{Editor: "A", TotalChats: 20},
		{Editor: "B", TotalChats: 5},
		{Editor: "A", TotalChats: 30},
	}
	reversed := []usagedomain.ChatRow{
		{Editor: "A", TotalChats: 30},
		{Editor: "B", TotalChats: 5},
		{Editor: "A", TotalChats: 20},
		{Editor: "A", TotalChats: 10},
	}

	a := ChatByEditor(forward)
	b := ChatByEditor(reversed)
	assert.Equal(t, a[len(a)-1].TotalChats, b[len(b)-1].TotalChats)
}

func TestChatByEditorEmptyInput(t *testing.T) {
	grouped := ChatByEditor(nil)
	require.Len(t, grouped, 1)
	assert.Equal(t, TotalLabel, grouped[0].Editor)
	assert.Equal(t, int64(0), grouped[0].TotalChats)
}

func TestCompletionsByLanguage(t *testing.T) {
	rows := []usagedomain.CompletionRow{
		{Language: "go", TotalCodeSuggestions: 100, TotalCodeAcceptances: 40, TotalCodeLinesSuggested: 300, TotalCodeLinesAccepted: 120},
		{Language: "python", TotalCodeSuggestions: 50, TotalCodeAcceptances: 10},
		{Language: "go", TotalCodeSuggestions: 20, TotalCodeAcceptances: 5},
	}

	grouped := CompletionsByLanguage(rows)
	require.Len(t, grouped, 3)

	assert.Equal(t, "go", grouped[0].Language)
	assert.Equal(t, int64(120), grouped[0].TotalCodeSuggestions)
	assert.Equal(t, int64(45), grouped[0].TotalCodeAcceptances)

	total := grouped[2]
	assert.Equal(t, TotalLabel, total.Language)
	assert.Equal(t, int64(170), total.TotalCodeSuggestions)
	assert.Equal(t, int64(55), total.TotalCodeAcceptances)
	assert.Equal(t, int64(300), total.TotalCodeLinesSuggested)
}

func TestAcceptanceRateByLanguage(t *testing.T) {
	rows := []usagedomain.CompletionRow{
		{Language: "go", TotalCodeSuggestions: 100, TotalCodeAcceptances: 40},
		{Language: "go", TotalCodeSuggestions: 0, TotalCodeAcceptances: 0}, // undefined, excluded from the mean
		{Language: "go", TotalCodeSuggestions: 10, TotalCodeAcceptances: 6},
		{Language: "rust", TotalCodeSuggestions: 0},
	}

	got := AcceptanceRateByLanguage(rows)
	require.Len(t, got, 2)

	require.True(t, got[0].AcceptanceRate.Valid)
	// Mean of 40% and 60% over two defined rows, not three.
	assert.InDelta(t, 50.0, got[0].AcceptanceRate.Value, 1e-9)

	assert.Equal(t, "rust", got[1].Language)
	assert.False(t, got[1].AcceptanceRate.Valid)
}
