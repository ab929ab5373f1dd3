package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

const sheetName = "Travel Requests"

var headers = []string{
	"Reference", "Employee", "State", "Start", "End", "Days",
	"Transport", "Class", "Distance (km)", "International",
	"Estimated Cost", "Currency", "Purpose",
}

// Exporter renders travel requests as an xlsx workbook for the finance desk.
type Exporter struct {
	companyName string
	logger      *zap.Logger
}

// NewExporter creates a new Exporter
func NewExporter(companyName string, logger *zap.Logger) *Exporter {
	return &Exporter{
		companyName: companyName,
		logger:      logger,
	}
}

// Export builds the workbook and returns its bytes
func (e *Exporter) Export(ctx context.Context, requests []*entity.TravelRequest) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	e.setCell(f, "A1", e.companyName)
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		e.setCell(f, cell, header)
	}

	var total float64
	row := 4
	for _, r := range requests {
		international := "no"
		if r.International {
			international = "yes"
		}

		values := []interface{}{
			r.Reference,
			r.EmployeeName,
			r.State,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			r.DurationDays,
			r.TransportMode,
			r.TravelClass,
			r.DistanceKm,
			international,
			r.EstimatedCost,
			r.Currency,
			r.MissionPurpose,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			e.setCell(f, cell, value)
		}

		total += r.EstimatedCost
		row++
	}

	totalLabelCell, _ := excelize.CoordinatesToCellName(len(headers)-2, row+1)
	totalValueCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row+1)
	e.setCell(f, totalLabelCell, "Total")
	e.setCell(f, totalValueCell, total)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Travel request export generated",
		zap.Int("requests", len(requests)),
		zap.Float64("total", total))

	return buf.Bytes(), nil
}

// setCell sets a cell value in the workbook
func (e *Exporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
