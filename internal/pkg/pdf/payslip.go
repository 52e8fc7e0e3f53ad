package pdf

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// The core PDF fonts only cover cp1252, so names are set in an embedded UTF-8 font.
const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// PayslipLine is one row of the payslip document.
type PayslipLine struct {
	Code   string
	Name   string
	Amount string
}

// PayslipDocument carries what is printed on a payslip.
type PayslipDocument struct {
	Number       string
	EmployeeName string
	PeriodFrom   string
	PeriodTo     string
	PaymentDays  int
	CreditNote   bool
	Lines        []PayslipLine
}

// RenderPayslip renders doc as an A4 PDF.
func RenderPayslip(doc PayslipDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	pdf.SetTitle("Payslip "+doc.Number, true)
	pdf.AddPage()

	title := "Payslip"
	if doc.CreditNote {
		title = "Payslip Refund"
	}
	pdf.SetFont(fontFamily, "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont(fontFamily, "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Reference: %s", doc.Number))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", doc.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", doc.PeriodFrom, doc.PeriodTo))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payment days: %d", doc.PaymentDays))
	pdf.Ln(12)

	if len(doc.Lines) > 0 {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.CellFormat(60, 8, "Code", "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 8, "Description", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

		pdf.SetFont(fontFamily, "", 10)
		for _, l := range doc.Lines {
			pdf.CellFormat(60, 7, l.Code, "1", 0, "L", false, 0, "")
			pdf.CellFormat(80, 7, l.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, l.Amount, "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
