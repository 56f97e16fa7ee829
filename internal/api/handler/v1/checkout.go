package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/request"
	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/service"
)

type CheckoutService interface {
	Submit(ctx context.Context, session domain.Session, customerID, employeeID uint) (domain.PaymentRecord, error)
	ListPayments(ctx context.Context, token string) ([]domain.PaymentRecord, error)
}

type ReceiptService interface {
	Build(cart domain.Cart, customerName, cashierName string, amountPaid int) domain.Receipt
	RenderPDF(receipt domain.Receipt) ([]byte, error)
}

type CheckoutHandler struct {
	svc      CheckoutService
	receipts ReceiptService
	carts    CartService
	catalog  CatalogService
}

func NewCheckoutHandler(svc CheckoutService, receipts ReceiptService, carts CartService, catalog CatalogService) *CheckoutHandler {
	return &CheckoutHandler{
		svc:      svc,
		receipts: receipts,
		carts:    carts,
		catalog:  catalog,
	}
}

// HandleCheckout godoc
// @Summary      Submit the cart as a payment
// @Description  Requires a non-empty cart and both party selections. The cart is cleared only when the upstream accepts the payment.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckoutRequest  true  "request body"
// @Success      201  {object}  domain.PaymentRecord
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /checkout [post]
// @Security BearerAuth
func (h *CheckoutHandler) HandleCheckout(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), session, req.CustomerID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCheckout -> h.svc.Submit -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListPayments godoc
// @Summary      List submitted payments
// @Tags         checkout
// @Produce      json
// @Success      200  {array}   domain.PaymentRecord
// @Failure      502  {object}  response.Err
// @Router       /payments [get]
// @Security BearerAuth
func (h *CheckoutHandler) HandleListPayments(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	payments, err := h.svc.ListPayments(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPayments -> h.svc.ListPayments -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// HandleReceipt godoc
// @Summary      Render a receipt PDF for the session's cart
// @Description  Party names are resolved best-effort; a failed lookup falls back to "Unknown" rather than blocking the print.
// @Tags         checkout
// @Accept       json
// @Produce      application/pdf
// @Param        request  body  request.ReceiptRequest  true  "request body"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /checkout/receipt [post]
// @Security BearerAuth
func (h *CheckoutHandler) HandleReceipt(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	customerName := h.lookupCustomerName(ctx.Request.Context(), session.UpstreamToken, req.CustomerID)
	cashierName := h.lookupEmployeeName(ctx.Request.Context(), session.UpstreamToken, req.EmployeeID)

	receipt := h.receipts.Build(h.carts.Get(session.ID), customerName, cashierName, req.AmountPaid)

	pdfBytes, err := h.receipts.RenderPDF(receipt)
	if err != nil {
		err = fmt.Errorf("v1.HandleReceipt -> h.receipts.RenderPDF -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="invoice.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *CheckoutHandler) lookupCustomerName(ctx context.Context, token string, customerID uint) string {
	if customerID == 0 {
		return ""
	}

	customers, err := h.catalog.ListCustomers(ctx, token, "")
	if err != nil {
		return ""
	}

	for _, customer := range customers {
		if customer.ID == customerID {
			return customer.Name
		}
	}

	return ""
}

func (h *CheckoutHandler) lookupEmployeeName(ctx context.Context, token string, employeeID uint) string {
	if employeeID == 0 {
		return ""
	}

	employees, err := h.catalog.ListEmployees(ctx, token)
	if err != nil {
		return ""
	}

	for _, employee := range employees {
		if employee.ID == employeeID {
			return employee.Name
		}
	}

	return ""
}
