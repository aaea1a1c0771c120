package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/premiereye/salesops/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Service generates lead reports from a reconciled snapshot
type Service struct {
	storagePath string
}

// NewService creates a new export service
func NewService(storagePath string) *Service {
	// Ensure storage directory exists
	os.MkdirAll(storagePath, 0755)

	return &Service{storagePath: storagePath}
}

var leadHeaders = []string{
	"ID", "Name", "Phone", "Email", "Location", "Source", "Status",
	"Pipeline Stage", "Appointment", "Service", "Sale Amount",
	"Calls", "Messages", "Captured",
}

// ExportLeads writes the snapshot plus the computed dashboard metrics to a
// csv or excel file and returns its location
func (s *Service) ExportLeads(leads []models.Lead, metrics models.DashboardMetrics, format string) (*models.ExportResponse, error) {
	if format != "csv" && format != "excel" {
		return nil, fmt.Errorf("invalid format: must be csv or excel")
	}

	createdAt := time.Now().UTC()
	var path string
	var err error
	if format == "csv" {
		path, err = s.writeCSV(leads, createdAt)
	} else {
		path, err = s.writeExcel(leads, metrics, createdAt)
	}
	if err != nil {
		return nil, err
	}

	return &models.ExportResponse{
		Format:    format,
		LeadCount: len(leads),
		FilePath:  path,
		CreatedAt: createdAt.Format(time.RFC3339),
	}, nil
}

func leadRow(l models.Lead) []string {
	appointment := ""
	if l.AppointmentDate != nil {
		appointment = l.AppointmentDate.Format(time.RFC3339)
	}
	saleAmount := ""
	if l.SaleAmount != nil {
		saleAmount = strconv.FormatFloat(*l.SaleAmount, 'f', 2, 64)
	}
	return []string{
		l.ID, l.Name, l.Phone, l.Email, l.Location, l.Source, string(l.Status),
		string(l.PipelineStage), appointment, l.Service, saleAmount,
		strconv.Itoa(len(l.CallAttempts)), strconv.Itoa(len(l.Messages)),
		l.DateCaptured.Format(time.RFC3339),
	}
}

func (s *Service) writeCSV(leads []models.Lead, createdAt time.Time) (string, error) {
	path := filepath.Join(s.storagePath, fmt.Sprintf("leads_%s.csv", createdAt.Format("20060102_150405")))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed creating export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(leadHeaders); err != nil {
		return "", err
	}
	for _, lead := range leads {
		if err := w.Write(leadRow(lead)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Service) writeExcel(leads []models.Lead, metrics models.DashboardMetrics, createdAt time.Time) (string, error) {
	path := filepath.Join(s.storagePath, fmt.Sprintf("leads_%s.xlsx", createdAt.Format("20060102_150405")))

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range leadHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, lead := range leads {
		for col, value := range leadRow(lead) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Summary sheet with the dashboard metrics
	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return "", err
	}
	rows := [][]any{
		{"Total Leads", metrics.Total},
		{"New Today", metrics.NewToday},
		{"Appointments Booked", metrics.Booked},
		{"Appointments Completed", metrics.Completed},
		{"Revenue", metrics.Revenue},
		{"Calls Made", metrics.CallsMade},
		{"Calls Answered", metrics.CallsAnswered},
		{"Answer Rate", metrics.AnswerRate},
		{"Messages", metrics.MessagesTotal},
	}
	for i, row := range rows {
		f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), row[1])
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed saving excel export: %w", err)
	}

	return path, nil
}
