package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService interface {
	InventorySalesWorkbook(items []domain.InventoryItem, sales []domain.Sale) ([]byte, error)
	SalaryWorkbook(salaries []domain.Salary) ([]byte, error)
	SalaryReportPDF(salaries []domain.Salary) ([]byte, error)
}

type ReportHandler struct {
	svc     ReportService
	catalog CatalogService
	payroll PayrollService
}

func NewReportHandler(svc ReportService, catalog CatalogService, payroll PayrollService) *ReportHandler {
	return &ReportHandler{
		svc:     svc,
		catalog: catalog,
		payroll: payroll,
	}
}

// HandleInventorySalesReport godoc
// @Summary      Download the inventory and sales workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      502  {object}  response.Err
// @Router       /reports/inventory-sales [get]
// @Security BearerAuth
func (h *ReportHandler) HandleInventorySalesReport(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	items, err := h.catalog.ListInventories(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleInventorySalesReport -> h.catalog.ListInventories -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	sales, err := h.catalog.ListSales(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleInventorySalesReport -> h.catalog.ListSales -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	workbook, err := h.svc.InventorySalesWorkbook(items, sales)
	if err != nil {
		err = fmt.Errorf("v1.HandleInventorySalesReport -> h.svc.InventorySalesWorkbook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="Inventory_and_Sales.xlsx"`)
	ctx.Data(http.StatusOK, contentTypeXLSX, workbook)
}

// HandleSalaryReport godoc
// @Summary      Download the payroll workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        period  query     string  false  "exact period, e.g. 2024-01"
// @Param        q       query     string  false  "employee name fragment"
// @Success      200  {file}    binary
// @Failure      502  {object}  response.Err
// @Router       /reports/salaries [get]
// @Security BearerAuth
func (h *ReportHandler) HandleSalaryReport(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	salaries, err := h.payroll.ListSalaries(ctx.Request.Context(), session.UpstreamToken, ctx.Query("period"), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSalaryReport -> h.payroll.ListSalaries -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	workbook, err := h.svc.SalaryWorkbook(salaries)
	if err != nil {
		err = fmt.Errorf("v1.HandleSalaryReport -> h.svc.SalaryWorkbook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="Laporan_Gaji_Karyawan.xlsx"`)
	ctx.Data(http.StatusOK, contentTypeXLSX, workbook)
}

// HandleSalaryReportPDF godoc
// @Summary      Download the payroll report as PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        period  query     string  false  "exact period, e.g. 2024-01"
// @Param        q       query     string  false  "employee name fragment"
// @Success      200  {file}    binary
// @Failure      502  {object}  response.Err
// @Router       /reports/salaries/pdf [get]
// @Security BearerAuth
func (h *ReportHandler) HandleSalaryReportPDF(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	salaries, err := h.payroll.ListSalaries(ctx.Request.Context(), session.UpstreamToken, ctx.Query("period"), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSalaryReportPDF -> h.payroll.ListSalaries -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	report, err := h.svc.SalaryReportPDF(salaries)
	if err != nil {
		err = fmt.Errorf("v1.HandleSalaryReportPDF -> h.svc.SalaryReportPDF -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="Laporan_Gaji_Karyawan.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", report)
}
