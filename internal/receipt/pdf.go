package receipt

import (
	"bytes"
	"fmt"

	"group-order-client/internal/backend"
	"group-order-client/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const timestampLayout = "2006-01-02 15:04 MST"

// RenderPDF lays the consolidated receipt out on a single A4 flow: header, one
// block per participant and the grand total.
func RenderPDF(r backend.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Group Order Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Order: %s", r.OrderName)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("PIN: %s", r.OrderPIN), "", 1, "C", false, 0, "")
	if !r.Timestamp.IsZero() {
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", r.Timestamp.Format(timestampLayout)), "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	if len(r.Participants) == 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 5, "No items ordered yet.", "", 1, "L", false, 0, "")
	}
	for _, p := range r.Participants {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, tr(p.Name), "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, line := range p.Items {
			pdf.CellFormat(140, 5, tr(fmt.Sprintf("%dx %s", line.Quantity, line.Name)), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, utils.FormatMoney(line.Total), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(140, 5, "Subtotal", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, utils.FormatMoney(p.Subtotal), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 7, "Grand Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, utils.FormatMoney(r.GrandTotal), "T", 1, "R", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return out.Bytes(), nil
}
