package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets and offer letters into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// OfferLetter carries the fields printed on a generated offer letter.
type OfferLetter struct {
	StudentName string
	RollNumber  string
	CompanyName string
	Position    string
	CTC         string
	IssuedAt    string
	Status      string
}

// RenderOfferLetter produces a single-page offer letter document.
func (e *PDFExporter) RenderOfferLetter(letter OfferLetter) ([]byte, error) {
	if letter.StudentName == "" || letter.CompanyName == "" {
		return nil, fmt.Errorf("offer letter requires student and company names")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "OFFER LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", letter.IssuedAt), "", 1, "R", false, 0, "")
	pdf.Ln(4)
	pdf.MultiCell(0, 7, fmt.Sprintf("Dear %s (Roll No. %s),", letter.StudentName, letter.RollNumber), "", "", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"%s is pleased to offer you the position of %s with an annual compensation of %s.",
		letter.CompanyName, letter.Position, letter.CTC), "", "", false)
	pdf.Ln(4)

	rows := [][2]string{
		{"Company", letter.CompanyName},
		{"Position", letter.Position},
		{"CTC", letter.CTC},
		{"Status", letter.Status},
	}
	pdf.SetFont("Arial", "B", 10)
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(120, 8, row[1], "1", 1, "", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, "Please respond to this offer through the placement portal.", "", "", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render offer letter: %w", err)
	}
	return buf.Bytes(), nil
}
