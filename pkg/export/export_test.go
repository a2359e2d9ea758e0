package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

func sampleWeeks() []models.RosterWeek {
	return []models.RosterWeek{{
		Week:          25,
		TemplateIndex: 1,
		Delta:         12,
		Days: []models.RosterDay{
			{Day: "mon", Morning: []string{"Alice", "Bob"}, Afternoon: []string{"Carol"}},
			{Day: "tue", Morning: []string{}, Afternoon: []string{}},
		},
	}}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteCSV(&b, sampleWeeks()))

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		CSVHeader,
		{"25", "1", "mon", "morning", "0", "Alice"},
		{"25", "1", "mon", "morning", "1", "Bob"},
		{"25", "1", "mon", "afternoon", "0", "Carol"},
	}, rows)
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteText(&b, sampleWeeks()))

	out := b.String()
	assert.Contains(t, out, "week 25 (template 1, offset 12)")
	assert.Contains(t, out, "Alice, Bob")
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[3], "tue"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "-"))
}
