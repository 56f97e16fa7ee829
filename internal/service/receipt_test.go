package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

func TestReceiptService_Build(t *testing.T) {
	cart := domain.Cart{
		Lines: []domain.CartLine{
			{Name: "Paracetamol", Quantity: 2, Price: 10000, LineTotal: 20000},
			{Name: "Vitamin C", Quantity: 5, Price: 5000, LineTotal: 25000},
		},
		Total: 45000,
	}

	t.Run("builds a full receipt", func(t *testing.T) {
		svc := NewReceiptService()
		svc.now = func() time.Time {
			return time.UnixMilli(1710500000000)
		}

		receipt := svc.Build(cart, "Budi", "Siti", 50000)

		assert.Equal(t, "Life Care Pharmacy", receipt.Header)
		assert.Equal(t, "TRX-1710500000000", receipt.TransactionNumber)
		assert.Equal(t, "Budi", receipt.Customer)
		assert.Equal(t, "Siti", receipt.Cashier)
		assert.Len(t, receipt.Lines, 2)
		assert.Equal(t, 45000, receipt.Total)
		assert.Equal(t, 50000, receipt.AmountPaid)
		assert.Equal(t, 5000, receipt.Change)
		assert.Equal(t, "Terimakasih sudah berbelanja!", receipt.Footer)
	})

	t.Run("missing names fall back to Unknown", func(t *testing.T) {
		svc := NewReceiptService()

		receipt := svc.Build(cart, "", "", 0)

		assert.Equal(t, "Unknown", receipt.Customer)
		assert.Equal(t, "Unknown", receipt.Cashier)
	})

	t.Run("insufficient tender yields negative change", func(t *testing.T) {
		svc := NewReceiptService()

		receipt := svc.Build(cart, "Budi", "Siti", 40000)

		assert.Equal(t, -5000, receipt.Change)
	})
}

func TestReceiptService_RenderPDF(t *testing.T) {
	svc := NewReceiptService()
	receipt := svc.Build(domain.Cart{
		Lines: []domain.CartLine{
			{Name: "Paracetamol", Quantity: 2, Price: 10000, LineTotal: 20000},
		},
		Total: 20000,
	}, "Budi", "Siti", 50000)

	pdfBytes, err := svc.RenderPDF(receipt)

	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", formatRupiah(0))
	assert.Equal(t, "Rp 500", formatRupiah(500))
	assert.Equal(t, "Rp 45.000", formatRupiah(45000))
	assert.Equal(t, "Rp 1.250.000", formatRupiah(1250000))
	assert.Equal(t, "Rp -5.000", formatRupiah(-5000))
}
