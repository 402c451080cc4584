package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avertech/teamboard-backend/pkg/models"
)

func TestWorkHoursWorkbook(t *testing.T) {
	stats := &models.DashboardStats{
		MemberHours: []models.MemberHoursRow{
			{MemberID: "1", Name: "Anita Rai", Hours: decimal.RequireFromString("2.5")},
			{MemberID: "2", Name: "Suman Thapa", Hours: decimal.RequireFromString("1")},
		},
	}

	f, err := WorkHoursWorkbook(stats)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(workHoursSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Anita Rai", name)

	hours, err := f.GetCellValue(workHoursSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", hours)

	total, err := f.GetCellValue(workHoursSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "3.5", total)

	label, err := f.GetCellValue(workHoursSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}

func TestWorkHoursWorkbookEmpty(t *testing.T) {
	f, err := WorkHoursWorkbook(&models.DashboardStats{})
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(workHoursSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Member", header)

	total, err := f.GetCellValue(workHoursSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
