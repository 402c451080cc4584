// Package export builds the downloadable spreadsheet reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/avertech/teamboard-backend/pkg/models"
)

const workHoursSheet = "Work Hours"

// WorkHoursWorkbook renders the per-member actual-hours table the
// dashboard charts, one row per member plus a total row.
func WorkHoursWorkbook(stats *models.DashboardStats) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(workHoursSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []string{"Member", "Total Hours"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(workHoursSheet, cell, header)
	}
	f.SetCellStyle(workHoursSheet, "A1", "B1", headerStyle)

	total := 0.0
	for i, row := range stats.MemberHours {
		hours, _ := row.Hours.Float64()
		total += hours
		f.SetCellValue(workHoursSheet, fmt.Sprintf("A%d", i+2), row.Name)
		f.SetCellValue(workHoursSheet, fmt.Sprintf("B%d", i+2), hours)
	}

	totalRow := len(stats.MemberHours) + 2
	f.SetCellValue(workHoursSheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(workHoursSheet, fmt.Sprintf("B%d", totalRow), total)
	f.SetCellStyle(workHoursSheet,
		fmt.Sprintf("A%d", totalRow), fmt.Sprintf("B%d", totalRow), headerStyle)

	f.SetColWidth(workHoursSheet, "A", "A", 30)
	f.SetColWidth(workHoursSheet, "B", "B", 14)

	return f, nil
}
