package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type placementSummaryProvider interface {
	PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered report ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the placement summary report.
type ExportService struct {
	analytics placementSummaryProvider
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(analytics placementSummaryProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{analytics: analytics, csv: csv, pdf: pdf, logger: logger}
}

// PlacementReport renders the per-company placement summary in the requested
// format.
func (s *ExportService) PlacementReport(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	format = ExportFormat(strings.ToLower(string(format)))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	summary, err := s.analytics.PlacementSummary(ctx)
	if err != nil {
		return nil, err
	}

	dataset := buildPlacementDataset(summary)

	var (
		data        []byte
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		data, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		data, err = s.pdf.Render(dataset, "Placement Summary")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render placement report")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("placement-summary.%s", format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func buildPlacementDataset(summary []models.CompanyPlacementSummary) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"company", "jobs", "applications", "offers_extended", "offers_accepted"},
	}
	for _, row := range summary {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"company":         row.CompanyName,
			"jobs":            strconv.Itoa(row.Jobs),
			"applications":    strconv.Itoa(row.Applications),
			"offers_extended": strconv.Itoa(row.OffersExtended),
			"offers_accepted": strconv.Itoa(row.OffersAccepted),
		})
	}
	return dataset
}
