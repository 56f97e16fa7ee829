package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/request"
	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/service"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

type CatalogService interface {
	InventorySnapshot(ctx context.Context, token string) ([]domain.InventoryItem, error)
	ListInventories(ctx context.Context, token string) ([]domain.InventoryItem, error)
	CreateInventory(ctx context.Context, token string, req upstream.InventoryRequest) (domain.InventoryItem, error)
	UpdateInventory(ctx context.Context, token string, id uint, req upstream.InventoryRequest) (domain.InventoryItem, error)
	DeleteInventory(ctx context.Context, token string, id uint) error
	ListCustomers(ctx context.Context, token, search string) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, token string, req upstream.CustomerRequest) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, token string, id uint, req upstream.CustomerRequest) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, token string, id uint) error
	ListEmployees(ctx context.Context, token string) ([]domain.Employee, error)
	ListSales(ctx context.Context, token string) ([]domain.Sale, error)
	RecordSale(ctx context.Context, token string, inventoryID uint, quantity int, employeeID uint) error
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleInventorySnapshot godoc
// @Summary      Get the sellable inventory snapshot
// @Description  Only items with positive stock appear. A response superseded by a newer fetch is discarded with 409.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.InventoryItem
// @Failure      409  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /inventories/snapshot [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleInventorySnapshot(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	items, err := h.svc.InventorySnapshot(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		if errors.Is(err, service.ErrSnapshotSuperseded) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleInventorySnapshot -> h.svc.InventorySnapshot -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleListInventories godoc
// @Summary      List all inventory items
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.InventoryItem
// @Failure      502  {object}  response.Err
// @Router       /inventories [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListInventories(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	items, err := h.svc.ListInventories(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleListInventories -> h.svc.ListInventories -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleCreateInventory godoc
// @Summary      Create an inventory item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      request.InventoryRequest  true  "request body"
// @Success      201  {object}  domain.InventoryItem
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /inventories [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateInventory(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.InventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateInventory(ctx.Request.Context(), session.UpstreamToken, upstream.InventoryRequest{
		Kode:  req.Kode,
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateInventory -> h.svc.CreateInventory -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateInventory godoc
// @Summary      Update an inventory item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "inventory item ID"
// @Param        request  body      request.InventoryRequest  true  "request body"
// @Success      200  {object}  domain.InventoryItem
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /inventories/{id} [put]
// @Security BearerAuth
func (h *CatalogHandler) HandleUpdateInventory(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req request.InventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateInventory(ctx.Request.Context(), session.UpstreamToken, id, upstream.InventoryRequest{
		Kode:  req.Kode,
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateInventory -> h.svc.UpdateInventory -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteInventory godoc
// @Summary      Delete an inventory item
// @Tags         catalog
// @Param        id  path  int  true  "inventory item ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /inventories/{id} [delete]
// @Security BearerAuth
func (h *CatalogHandler) HandleDeleteInventory(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteInventory(ctx.Request.Context(), session.UpstreamToken, id); err != nil {
		err = fmt.Errorf("v1.HandleDeleteInventory -> h.svc.DeleteInventory -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListCustomers godoc
// @Summary      List customers
// @Description  An optional search query matches name or NIK case-insensitively.
// @Tags         catalog
// @Produce      json
// @Param        search  query     string  false  "name or NIK fragment"
// @Success      200  {array}   domain.Customer
// @Failure      502  {object}  response.Err
// @Router       /customers [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListCustomers(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	customers, err := h.svc.ListCustomers(ctx.Request.Context(), session.UpstreamToken, ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListCustomers -> h.svc.ListCustomers -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, customers)
}

// HandleCreateCustomer godoc
// @Summary      Create a customer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      request.CustomerRequest  true  "request body"
// @Success      201  {object}  domain.Customer
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /customers [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateCustomer(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateCustomer(ctx.Request.Context(), session.UpstreamToken, upstream.CustomerRequest{
		NIK:     req.NIK,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCustomer -> h.svc.CreateCustomer -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateCustomer godoc
// @Summary      Update a customer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "customer ID"
// @Param        request  body      request.CustomerRequest  true  "request body"
// @Success      200  {object}  domain.Customer
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /customers/{id} [put]
// @Security BearerAuth
func (h *CatalogHandler) HandleUpdateCustomer(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req request.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateCustomer(ctx.Request.Context(), session.UpstreamToken, id, upstream.CustomerRequest{
		NIK:     req.NIK,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateCustomer -> h.svc.UpdateCustomer -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteCustomer godoc
// @Summary      Delete a customer
// @Tags         catalog
// @Param        id  path  int  true  "customer ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /customers/{id} [delete]
// @Security BearerAuth
func (h *CatalogHandler) HandleDeleteCustomer(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteCustomer(ctx.Request.Context(), session.UpstreamToken, id); err != nil {
		err = fmt.Errorf("v1.HandleDeleteCustomer -> h.svc.DeleteCustomer -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListEmployees godoc
// @Summary      List employees
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Employee
// @Failure      502  {object}  response.Err
// @Router       /employees [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListEmployees(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	employees, err := h.svc.ListEmployees(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEmployees -> h.svc.ListEmployees -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, employees)
}

// HandleListSales godoc
// @Summary      List recorded sales
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Sale
// @Failure      502  {object}  response.Err
// @Router       /sales [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListSales(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	sales, err := h.svc.ListSales(ctx.Request.Context(), session.UpstreamToken)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSales -> h.svc.ListSales -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleRecordSale godoc
// @Summary      Record an outtake sale
// @Description  Writes the decremented stock back, then creates the sale record.
// @Tags         catalog
// @Accept       json
// @Success      204
// @Param        request  body      request.RecordSaleRequest  true  "request body"
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /sales [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleRecordSale(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.RecordSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.RecordSale(ctx.Request.Context(), session.UpstreamToken, req.InventoryID, req.Quantity, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrItemNotFound):
			response.RenderErr(ctx, response.ErrNotFound("inventory item", "id", req.InventoryID))
		case errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRecordSale -> h.svc.RecordSale -> %w", err)
			renderUpstreamErr(ctx, err)
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid id parameter")))

		return 0, false
	}

	return uint(id), true
}
