package notify

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"campaignapi/models"
)

// BuildReceiptPDF renders the official contribution receipt attached to the
// donor's email.
func BuildReceiptPDF(rec models.DonationRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Campaign letterhead
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, "Committee to Elect")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, "Paid for by the campaign committee")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 22)
	pdf.Cell(0, 10, "CONTRIBUTION RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, fmt.Sprintf("Receipt Reference: %s", rec.PaymentRef))
	pdf.Cell(60, 6, fmt.Sprintf("Issued: %s", time.Now().Format("January 2, 2006")))
	pdf.Ln(6)
	pdf.Cell(60, 6, fmt.Sprintf("Contribution Date: %s", rec.Timestamp))
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Contributor:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, rec.Name)
	pdf.Ln(5)
	if rec.Email != "" {
		pdf.Cell(0, 5, rec.Email)
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Contributor type: %s", rec.ContributorType))
	pdf.Ln(15)

	// Contribution table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.Cell(120, 8, "Description")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 10)
	description := "Campaign contribution (one-time)"
	if rec.Recurring {
		description = "Campaign contribution (monthly recurring)"
	}
	pdf.Cell(120, 6, description)
	pdf.Cell(40, 6, fmt.Sprintf("$%d.00", rec.Amount))
	pdf.Ln(15)

	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(110, pdf.GetY(), 90, 15, "F")
	pdf.SetFont("Arial", "B", 13)
	pdf.SetX(115)
	pdf.Cell(45, 15, "Total Received:")
	pdf.Cell(40, 15, fmt.Sprintf("$%d.00", rec.Amount))
	pdf.Ln(25)

	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, "Political contributions are not tax deductible. "+
		"This contribution is subject to statutory limits and public disclosure requirements. "+
		"Please retain this receipt for your records.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
