package climate

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"agniro/entities"
	"agniro/pkg/months"
)

const (
	CalendarSheet = "Calendar"
	RainfallSheet = "Rainfall"
)

// Mark is the calendar cell text for a crop in month m.
func Mark(c entities.Crop, m months.Month) string {
	p, h := months.Contains(c.PlantingMonths, m), months.Contains(c.HarvestMonths, m)
	switch {
	case p && h:
		return "P/H"
	case p:
		return "P"
	case h:
		return "H"
	}
	return ""
}

// CalendarWorkbook lays out one row per crop with planting (P) and harvest
// (H) marks per month, plus the rainfall table on a second sheet.
func CalendarWorkbook(crops []entities.Crop) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CalendarSheet); err != nil {
		return nil, err
	}
	header := []any{"Crop", "Region", "Type"}
	for _, m := range months.All() {
		header = append(header, m.String())
	}
	header = append(header, "Weeding", "Planted")
	if err := f.SetSheetRow(CalendarSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, c := range crops {
		row := []any{c.Name, string(c.Region), string(c.Type)}
		for _, m := range months.All() {
			row = append(row, Mark(c, m))
		}
		row = append(row, c.WeedingInfo, c.DatePlanted)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(CalendarSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("crop %s: %w", c.ID, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(CalendarSheet, "A1", last+"1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(CalendarSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetPanes(CalendarSheet, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(RainfallSheet); err != nil {
		return nil, err
	}
	rainHeader := []any{"Month"}
	for _, r := range regions {
		rainHeader = append(rainHeader, string(r.Name))
	}
	rainHeader = append(rainHeader, "Average")
	if err := f.SetSheetRow(RainfallSheet, "A1", &rainHeader); err != nil {
		return nil, err
	}
	for i, r := range rainfall {
		row := []any{r.Month.String()}
		for _, reg := range regions {
			row = append(row, r.For(reg.Name))
		}
		row = append(row, r.Average)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RainfallSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(RainfallSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
