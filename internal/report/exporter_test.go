package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

func TestExport(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	exporter := NewExporter("ACME SA", logger)

	requests := []*entity.TravelRequest{
		{
			Reference:      "TR00001",
			EmployeeName:   "Alice Martin",
			State:          entity.StateApproved,
			StartDate:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			DurationDays:   3,
			TransportMode:  entity.TransportAir,
			TravelClass:    entity.ClassBusiness,
			DistanceKm:     7000,
			International:  true,
			EstimatedCost:  4500,
			Currency:       "EUR",
			MissionPurpose: "Client workshop",
		},
		{
			Reference:      "TR00002",
			EmployeeName:   "Bob Durand",
			State:          entity.StateSubmitted,
			StartDate:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			DurationDays:   1,
			TransportMode:  entity.TransportRail,
			DistanceKm:     400,
			EstimatedCost:  700,
			Currency:       "EUR",
			MissionPurpose: "Audit",
		},
	}

	content, err := exporter.Export(context.Background(), requests)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	company, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ACME SA", company)

	header, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Reference", header)

	first, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "TR00001", first)

	second, err := f.GetCellValue(sheetName, "B5")
	require.NoError(t, err)
	assert.Equal(t, "Bob Durand", second)

	total, err := f.GetCellValue(sheetName, "L7")
	require.NoError(t, err)
	assert.Equal(t, "5200", total)
}

func TestExportEmpty(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	exporter := NewExporter("ACME SA", logger)

	content, err := exporter.Export(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(sheetName, "L5")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
