package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/models"
	appErrors "github.com/campusops/tpo-api/pkg/errors"
	"github.com/campusops/tpo-api/pkg/export"
)

type summaryStub struct {
	summary []models.CompanyPlacementSummary
	err     error
}

func (s *summaryStub) PlacementSummary(ctx context.Context) ([]models.CompanyPlacementSummary, error) {
	return s.summary, s.err
}

type csvStub struct {
	dataset export.Dataset
}

func (c *csvStub) Render(data export.Dataset) ([]byte, error) {
	c.dataset = data
	return []byte("csv-bytes"), nil
}

type pdfStub struct {
	title string
}

func (p *pdfStub) Render(data export.Dataset, title string) ([]byte, error) {
	p.title = title
	return []byte("pdf-bytes"), nil
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&summaryStub{}, &csvStub{}, &pdfStub{}, nil)

	_, err := svc.PlacementReport(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceCSVReport(t *testing.T) {
	csv := &csvStub{}
	svc := NewExportService(&summaryStub{summary: []models.CompanyPlacementSummary{
		{CompanyName: "Acme", Jobs: 3, Applications: 40, OffersExtended: 5, OffersAccepted: 2},
	}}, csv, &pdfStub{}, nil)

	result, err := svc.PlacementReport(context.Background(), ExportFormat("CSV"))
	require.NoError(t, err)
	assert.Equal(t, "placement-summary.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, []byte("csv-bytes"), result.Data)

	require.Len(t, csv.dataset.Rows, 1)
	assert.Equal(t, "Acme", csv.dataset.Rows[0]["company"])
	assert.Equal(t, "40", csv.dataset.Rows[0]["applications"])
}

func TestExportServicePDFReport(t *testing.T) {
	pdf := &pdfStub{}
	svc := NewExportService(&summaryStub{}, &csvStub{}, pdf, nil)

	result, err := svc.PlacementReport(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "placement-summary.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "Placement Summary", pdf.title)
}
