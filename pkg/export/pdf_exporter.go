package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// OutlineSection is one heading in an outline document with its child rows.
type OutlineSection struct {
	Heading string
	Items   []string
}

// PDFExporter renders outline documents, used for course content handouts.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderOutline creates a PDF with a title followed by heading/item sections.
func (e *PDFExporter) RenderOutline(title string, sections []OutlineSection) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, section.Heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		if len(section.Items) == 0 {
			pdf.CellFormat(0, 6, "  (no files)", "", 1, "L", false, 0, "")
		}
		for _, item := range section.Items {
			pdf.CellFormat(0, 6, "  - "+item, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
