package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

// ReportService generates the downloadable documents. Every report is
// built from data the caller already fetched; no upstream round-trips
// happen inside the renderers.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// InventorySalesWorkbook writes one workbook with an "Inventory" sheet
// and a "Sales" sheet.
func (s *ReportService) InventorySalesWorkbook(items []domain.InventoryItem, sales []domain.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Inventory")
	if err := f.SetSheetRow("Inventory", "A1", &[]any{"Kode", "Nama", "Harga", "Stock"}); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err = f.SetSheetRow("Inventory", cell, &[]any{item.Kode, item.Name, item.Price, item.Stock}); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	if _, err := f.NewSheet("Sales"); err != nil {
		return nil, fmt.Errorf("f.NewSheet -> %w", err)
	}
	if err := f.SetSheetRow("Sales", "A1", &[]any{"Kode", "Nama", "Quantity", "Employee", "Date"}); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	for i, sale := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err = f.SetSheetRow("Sales", cell, &[]any{sale.Kode, sale.Name, sale.Quantity, sale.EmployeeName, sale.Date}); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("f.WriteToBuffer -> %w", err)
	}

	return buf.Bytes(), nil
}

// SalaryWorkbook writes the payroll report sheet.
func (s *ReportService) SalaryWorkbook(salaries []domain.Salary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Laporan Gaji")
	if err := f.SetSheetRow("Laporan Gaji", "A1", &[]any{"Nama Karyawan", "Gaji", "Periode", "Tanggal Pembayaran", "Status"}); err != nil {
		return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
	}
	for i, salary := range salaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err = f.SetSheetRow("Laporan Gaji", cell, &[]any{
			salary.EmployeeName, salary.Amount, salary.Period, salary.PaymentDate, paymentStatus(salary),
		}); err != nil {
			return nil, fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("f.WriteToBuffer -> %w", err)
	}

	return buf.Bytes(), nil
}

// SalaryReportPDF writes one paginated block per salary record.
func (s *ReportService) SalaryReportPDF(salaries []domain.Salary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "PT Apoteker", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Laporan Gaji Karyawan", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, salary := range salaries {
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}

		name := salary.EmployeeName
		if name == "" {
			name = "-"
		}
		paymentDate := salary.PaymentDate
		if paymentDate == "" {
			paymentDate = "-"
		}

		pdf.CellFormat(0, 7, fmt.Sprintf("Nama Karyawan: %v", name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Gaji: %v", formatRupiah(salary.Amount)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Periode: %v", salary.Period), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Tanggal Pembayaran: %v", paymentDate), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Status: %v", paymentStatus(salary)), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}

func paymentStatus(salary domain.Salary) string {
	if salary.PaymentDate == "" {
		return "Belum Dibayar"
	}

	return "Sudah Dibayar"
}
