package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/request"
	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

type PayrollService interface {
	ListSalaries(ctx context.Context, token, period, query string) ([]domain.Salary, error)
	CreateSalary(ctx context.Context, token string, req upstream.SalaryRequest) (domain.Salary, error)
	UpdateSalary(ctx context.Context, token string, id uint, req upstream.SalaryRequest) (domain.Salary, error)
	DeleteSalary(ctx context.Context, token string, id uint) error
}

type PayrollHandler struct {
	svc PayrollService
}

func NewPayrollHandler(svc PayrollService) *PayrollHandler {
	return &PayrollHandler{
		svc: svc,
	}
}

// HandleListSalaries godoc
// @Summary      List salary records
// @Description  Filters by exact period and by employee-name substring when given.
// @Tags         payroll
// @Produce      json
// @Param        period  query     string  false  "exact period, e.g. 2024-01"
// @Param        q       query     string  false  "employee name fragment"
// @Success      200  {array}   domain.Salary
// @Failure      502  {object}  response.Err
// @Router       /salaries [get]
// @Security BearerAuth
func (h *PayrollHandler) HandleListSalaries(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	salaries, err := h.svc.ListSalaries(ctx.Request.Context(), session.UpstreamToken, ctx.Query("period"), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListSalaries -> h.svc.ListSalaries -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, salaries)
}

// HandleCreateSalary godoc
// @Summary      Create a salary record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request  body      request.SalaryRequest  true  "request body"
// @Success      201  {object}  domain.Salary
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /salaries [post]
// @Security BearerAuth
func (h *PayrollHandler) HandleCreateSalary(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.SalaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateSalary(ctx.Request.Context(), session.UpstreamToken, upstream.SalaryRequest{
		EmployeeID:  req.EmployeeID,
		Amount:      req.Amount,
		Period:      req.Period,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSalary -> h.svc.CreateSalary -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateSalary godoc
// @Summary      Update a salary record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "salary record ID"
// @Param        request  body      request.SalaryRequest  true  "request body"
// @Success      200  {object}  domain.Salary
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /salaries/{id} [put]
// @Security BearerAuth
func (h *PayrollHandler) HandleUpdateSalary(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req request.SalaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateSalary(ctx.Request.Context(), session.UpstreamToken, id, upstream.SalaryRequest{
		EmployeeID:  req.EmployeeID,
		Amount:      req.Amount,
		Period:      req.Period,
		PaymentDate: req.PaymentDate,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateSalary -> h.svc.UpdateSalary -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSalary godoc
// @Summary      Delete a salary record
// @Tags         payroll
// @Param        id  path  int  true  "salary record ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /salaries/{id} [delete]
// @Security BearerAuth
func (h *PayrollHandler) HandleDeleteSalary(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteSalary(ctx.Request.Context(), session.UpstreamToken, id); err != nil {
		err = fmt.Errorf("v1.HandleDeleteSalary -> h.svc.DeleteSalary -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
