package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

const (
	receiptHeader = "Life Care Pharmacy"
	receiptFooter = "Terimakasih sudah berbelanja!"
)

// ReceiptService formats a cart into a printable receipt. Pure
// formatting; the only defaults are "Unknown" for missing names. The
// transaction number is derived from the render timestamp and need
// not match the server-assigned payment id.
type ReceiptService struct {
	now func() time.Time
}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{
		now: time.Now,
	}
}

func (s *ReceiptService) Build(cart domain.Cart, customerName, cashierName string, amountPaid int) domain.Receipt {
	if customerName == "" {
		customerName = "Unknown"
	}
	if cashierName == "" {
		cashierName = "Unknown"
	}

	now := s.now()

	lines := make([]domain.ReceiptLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, domain.ReceiptLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			LineTotal: line.LineTotal,
		})
	}

	return domain.Receipt{
		Header:            receiptHeader,
		TransactionNumber: fmt.Sprintf("TRX-%d", now.UnixMilli()),
		Cashier:           cashierName,
		Customer:          customerName,
		Date:              now,
		Lines:             lines,
		Total:             cart.Total,
		AmountPaid:        amountPaid,
		Change:            domain.ComputeChange(cart.Total, amountPaid),
		Footer:            receiptFooter,
	}
}

// RenderPDF serializes the receipt into a printable A4 document:
// header block, separator rule, striped item table, totals and footer.
func (s *ReceiptService) RenderPDF(receipt domain.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, 20, receipt.Header)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 30, fmt.Sprintf("No. Transaksi: %v", receipt.TransactionNumber))
	pdf.Text(20, 40, fmt.Sprintf("Kasir: %v", receipt.Cashier))
	pdf.Text(20, 50, fmt.Sprintf("Customer: %v", receipt.Customer))
	pdf.Text(20, 60, fmt.Sprintf("Tanggal: %v", receipt.Date.Format("02/01/2006")))

	pdf.SetLineWidth(0.5)
	pdf.Line(20, 65, 190, 65)

	pdf.SetXY(20, 70)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Items Purchased:", "", 1, "L", false, 0, "")

	pdf.SetX(20)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(0, 0, 255)
	pdf.SetTextColor(255, 255, 255)
	widths := []float64{80, 20, 35, 35}
	headers := []string{"Nama", "Qty", "Harga", "Total"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, line := range receipt.Lines {
		fill := i%2 == 0
		pdf.SetFillColor(240, 240, 255)
		pdf.SetX(20)
		pdf.CellFormat(widths[0], 8, line.Name, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 8, formatRupiah(line.Price), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 8, formatRupiah(line.LineTotal), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(20)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: %v", formatRupiah(receipt.Total)), "", 1, "L", false, 0, "")
	pdf.SetX(20)
	pdf.CellFormat(0, 8, fmt.Sprintf("Uang yang dibayar: %v", formatRupiah(receipt.AmountPaid)), "", 1, "L", false, 0, "")
	pdf.SetX(20)
	pdf.CellFormat(0, 8, fmt.Sprintf("Kembalian: %v", formatRupiah(receipt.Change)), "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetX(20)
	pdf.CellFormat(0, 8, receipt.Footer, "", 1, "L", false, 0, "")

	y := pdf.GetY() + 4
	pdf.Line(20, y, 190, y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}

// formatRupiah renders an integer amount with thousand separators,
// e.g. 45000 -> "Rp 45.000". Negative amounts keep their sign.
func formatRupiah(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "Rp -" + string(out)
	}

	return "Rp " + string(out)
}
