package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/premiereye/salesops/pkg/models"
	"github.com/premiereye/salesops/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleLeads() []models.Lead {
	amount := 450.0
	appt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	return []models.Lead{
		{
			ID:              "42",
			Name:            "Dara Okafor",
			Phone:           "+13055551234",
			Status:          vocab.StatusApptBooked,
			PipelineStage:   vocab.StageBooked,
			AppointmentDate: &appt,
			SaleAmount:      &amount,
			DateCaptured:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			CallAttempts:    []models.CallAttempt{{ID: "42-call-1"}},
		},
		{
			ID:           "7",
			Name:         "Ben Ruiz",
			Status:       vocab.StatusNew,
			DateCaptured: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportLeadsCSV(t *testing.T) {
	service := NewService(t.TempDir())

	resp, err := service.ExportLeads(sampleLeads(), models.DashboardMetrics{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", resp.Format)
	assert.Equal(t, 2, resp.LeadCount)

	file, err := os.Open(resp.FilePath)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two leads")
	assert.Equal(t, leadHeaders, rows[0])
	assert.Equal(t, "42", rows[1][0])
	assert.Equal(t, "Dara Okafor", rows[1][1])
	assert.Equal(t, "450.00", rows[1][10])
	assert.Equal(t, "", rows[2][10], "no sale amount renders empty")
}

func TestExportLeadsExcel(t *testing.T) {
	service := NewService(t.TempDir())
	metrics := models.DashboardMetrics{Total: 2, Revenue: 450, AnswerRate: 0.5}

	resp, err := service.ExportLeads(sampleLeads(), metrics, "excel")
	require.NoError(t, err)

	f, err := excelize.OpenFile(resp.FilePath)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Leads", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Dara Okafor", name)

	label, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Total Leads", label)
	total, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	rateLabel, err := f.GetCellValue("Summary", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Answer Rate", rateLabel)
	rate, err := f.GetCellValue("Summary", "B8")
	require.NoError(t, err)
	assert.Equal(t, "0.5", rate)
}

func TestExportLeadsInvalidFormat(t *testing.T) {
	service := NewService(t.TempDir())

	_, err := service.ExportLeads(nil, models.DashboardMetrics{}, "pdf")
	assert.Error(t, err)
}
