// Package receipt renders PDF payment receipts.
package receipt

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Build renders a receipt for payment p on booking b and returns the PDF
// bytes and a download filename.
func Build(p *model.Payment, b *model.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Payment receipt "+b.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	row := func(label, value string) {
		pdf.Cell(45, 7, label)
		pdf.Cell(0, 7, tr(orDash(value)))
		pdf.Ln(7)
	}
	row("Receipt no:", receiptNumber(p))
	row("Paid on:", p.CreatedAt.Format("2006-01-02 15:04"))
	row("Method:", strings.ReplaceAll(p.Method, "_", " "))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Booking")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	row("Reference:", b.Reference)
	row("Customer:", b.CustomerName)
	row("Email:", b.Email)
	row("Package:", b.PackageName)
	row("Event date:", b.EventDate.Format(model.DateLayout))
	row("Guests:", strconv.Itoa(b.Guests))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Amounts")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	row("Package total:", Money(b.TotalPrice))
	row("This payment:", Money(p.Amount))
	row("Paid to date:", Money(b.AmountPaid))
	pdf.SetFont("Helvetica", "B", 12)
	row("Outstanding:", Money(b.Outstanding()))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Payment status: %s. Keep this receipt for your records.", b.PaymentStatus)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}
	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(b.Reference), p.CreatedAt.UTC().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// Money formats an amount with thousands separators and two decimals.
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	var out []byte
	n := len(whole)
	for i := 0; i < n; i++ {
		out = append(out, whole[i])
		if pos := n - i - 1; pos > 0 && pos%3 == 0 {
			out = append(out, ',')
		}
	}
	res := "$" + string(out) + "." + frac
	if neg {
		res = "-" + res
	}
	return res
}

func receiptNumber(p *model.Payment) string {
	id := strings.ReplaceAll(p.ID, "-", "")
	if len(id) > 10 {
		id = id[:10]
	}
	return "RCP-" + strings.ToUpper(id)
}

func orDash(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "-"
	}
	return v
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	return unsafeFilename.ReplaceAllString(s, "_")
}
