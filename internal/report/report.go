// Package report renders an estimate and its blueprint as an Excel workbook.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
)

// ContentType is the media type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order.
const (
	SheetMaterials = "Materials"
	SheetLabor     = "Labor"
	SheetCosts     = "Costs"
	SheetRooms     = "Rooms"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Workbook renders est and floors into an .xlsx document.
func Workbook(est *estimate.Estimate, floors []layout.FloorPlan) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, est, floors); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders the workbook to w.
func Write(w io.Writer, est *estimate.Estimate, floors []layout.FloorPlan) error {
	if est == nil {
		return fmt.Errorf("report: nil estimate")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []sheet{
		materialsSheet(est),
		laborSheet(est),
		costsSheet(est),
		roomsSheet(floors),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.name, r+2, err)
		}
	}

	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func materialsSheet(est *estimate.Estimate) sheet {
	m, r := est.Materials, est.Assumptions.Rates
	line := func(item, unit string, qty, rate float64) []any {
		return []any{item, qty, unit, rate, round2(qty * rate)}
	}
	return sheet{
		name:    SheetMaterials,
		headers: []string{"Item", "Quantity", "Unit", "Rate", "Cost"},
		widths:  []float64{16, 14, 10, 10, 16},
		rows: [][]any{
			line("Cement", "bags", m.Cement, r.Cement),
			line("Steel", "kg", m.Steel, r.Steel),
			line("Sand", "cu ft", m.Sand, r.Sand),
			line("Aggregate", "cu ft", m.Aggregate, r.Aggregate),
			line("Bricks", "nos", float64(m.Bricks), r.Bricks),
		},
	}
}

func laborSheet(est *estimate.Estimate) sheet {
	l := est.Labor
	return sheet{
		name:    SheetLabor,
		headers: []string{"Item", "Value"},
		widths:  []float64{20, 12},
		rows: [][]any{
			{"Masons", l.Masons},
			{"Helpers", l.Helpers},
			{"Steel Workers", l.SteelWorkers},
			{"Carpenters", l.Carpenters},
			{"Supervisors", l.Supervisors},
			{"Total Workers", l.Crew.Total()},
			{"Workers Needed", l.WorkersNeeded},
			{"Total Man-Days", l.TotalManDays},
			{"Estimated Days", l.EstimatedDays},
		},
	}
}

func costsSheet(est *estimate.Estimate) sheet {
	c := est.Costs
	return sheet{
		name:    SheetCosts,
		headers: []string{"Item", "Amount"},
		widths:  []float64{20, 16},
		rows: [][]any{
			{"Material Cost", c.MaterialCost},
			{"Labor Cost", c.LaborCost},
			{"Overhead", c.Overhead},
			{"Total Cost", c.TotalCost},
			{"Cost per Sq Yard", c.CostPerSqYard},
			{"Area (sq yd)", est.AreaSqYards},
			{"Floors", est.Floors},
			{"Location", est.Assumptions.Location},
		},
	}
}

func roomsSheet(floors []layout.FloorPlan) sheet {
	s := sheet{
		name:    SheetRooms,
		headers: []string{"Floor", "Room", "Area (sq ft)", "Dimensions", "Doors", "Windows"},
		widths:  []float64{16, 18, 14, 14, 8, 10},
	}
	for _, floor := range floors {
		for _, room := range floor.Rooms {
			s.rows = append(s.rows, []any{floor.Floor, room.Name, room.Area, room.Dims, len(room.Doors), len(room.Windows)})
		}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
