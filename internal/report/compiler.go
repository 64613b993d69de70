// Package report renders the downloadable screening report.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	// Filename is the download name of every report.
	Filename = "GramHealth_Report.pdf"
	// MIMEType is the report content type.
	MIMEType = "application/pdf"

	DefaultTitle = "GramHealth AI - Patient Report"
	disclaimer   = "Disclaimer: generated by AI. Consult a doctor."
	dateLayout   = "2006-01-02 15:04"
	fontFamily   = "Arial"
)

// Input is the English content of one report.
type Input struct {
	Title           string
	Symptoms        string
	FirstAid        []string
	WhenToSeeDoctor string
	Age             int
	Gender          string
}

// Compiler renders reports. The zero value is not usable; use NewCompiler.
type Compiler struct {
	title string
	now   func() time.Time
}

// NewCompiler returns a Compiler whose page header reads title.
func NewCompiler(title string) *Compiler {
	if title == "" {
		title = DefaultTitle
	}
	return &Compiler{title: title, now: time.Now}
}

// WithClock returns a copy of c that stamps reports with now().
func (c *Compiler) WithClock(now func() time.Time) *Compiler {
	cp := *c
	cp.now = now
	return &cp
}

// Compile renders in as a paginated PDF. Section order is fixed: patient details,
// reported symptoms, predicted condition, first aid, when to see a doctor, disclaimer.
// Every page carries the title header and a page-number footer.
func (c *Compiler) Compile(in Input) ([]byte, error) {
	now := c.now()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle(c.title, false)
	pdf.SetCreationDate(now)

	title := Sanitize(c.title)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 15)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	heading(pdf, 12, "Patient Details:")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, "Date: "+now.Format(dateLayout), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Age: %d | Gender: %s", in.Age, Sanitize(in.Gender)), "", 1, "", false, 0, "")
	pdf.Ln(5)

	heading(pdf, 12, "Reported Symptoms:")
	pdf.SetFont(fontFamily, "", 12)
	pdf.MultiCell(0, 8, Sanitize(in.Symptoms), "", "", false)
	pdf.Ln(5)

	heading(pdf, 14, "Predicted Condition: "+Sanitize(in.Title))
	pdf.Ln(5)

	heading(pdf, 12, "Recommended First Aid:")
	pdf.SetFont(fontFamily, "", 12)
	for _, item := range SanitizeAll(in.FirstAid) {
		pdf.MultiCell(0, 8, "- "+item, "", "", false)
	}
	pdf.Ln(5)

	pdf.SetTextColor(200, 0, 0)
	heading(pdf, 12, "When to see a Doctor:")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "", 12)
	pdf.MultiCell(0, 8, Sanitize(in.WhenToSeeDoctor), "", "", false)
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "I", 10)
	pdf.MultiCell(0, 5, disclaimer, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, size float64, text string) {
	pdf.SetFont(fontFamily, "B", size)
	pdf.CellFormat(0, 10, text, "", 1, "", false, 0, "")
}
