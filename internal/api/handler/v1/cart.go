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

type CartService interface {
	Get(sessionID string) domain.Cart
	AddLine(sessionID string, item domain.InventoryItem, quantity int) (domain.CartLine, error)
	UpdateQuantity(sessionID, lineID string, quantity int) error
	RemoveLine(sessionID, lineID string)
	Reset(sessionID string)
}

type CartCatalog interface {
	FindSnapshotItem(ctx context.Context, token string, itemID uint) (domain.InventoryItem, error)
}

type CartHandler struct {
	svc     CartService
	catalog CartCatalog
}

func NewCartHandler(svc CartService, catalog CartCatalog) *CartHandler {
	return &CartHandler{
		svc:     svc,
		catalog: catalog,
	}
}

// HandleGetCart godoc
// @Summary      Get the session's cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  domain.Cart
// @Failure      401  {object}  response.Err
// @Router       /cart [get]
// @Security BearerAuth
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	ctx.JSON(http.StatusOK, h.svc.Get(session.ID))
}

// HandleAddLine godoc
// @Summary      Add a line to the cart
// @Description  Looks the item up in the current inventory snapshot and appends a new line. Adding the same item twice produces two lines.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddCartLineRequest  true  "request body"
// @Success      201  {object}  domain.Cart
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /cart/lines [post]
// @Security BearerAuth
func (h *CartHandler) HandleAddLine(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.AddCartLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.catalog.FindSnapshotItem(ctx.Request.Context(), session.UpstreamToken, req.InventoryID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("inventory item", "id", req.InventoryID))

			return
		}
		if errors.Is(err, service.ErrSnapshotSuperseded) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleAddLine -> h.catalog.FindSnapshotItem -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	if _, err = h.svc.AddLine(session.ID, item, req.Quantity); err != nil {
		renderCartErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusCreated, h.svc.Get(session.ID))
}

// HandleUpdateLine godoc
// @Summary      Update a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        lineID   path      string  true  "cart line ID"
// @Param        request  body      request.UpdateCartLineRequest  true  "request body"
// @Success      200  {object}  domain.Cart
// @Failure      400  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /cart/lines/{lineID} [put]
// @Security BearerAuth
func (h *CartHandler) HandleUpdateLine(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateCartLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.UpdateQuantity(session.ID, ctx.Param("lineID"), req.Quantity); err != nil {
		renderCartErr(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, h.svc.Get(session.ID))
}

// HandleRemoveLine godoc
// @Summary      Remove a cart line
// @Description  Removing an absent line is a no-op.
// @Tags         cart
// @Produce      json
// @Param        lineID  path      string  true  "cart line ID"
// @Success      200  {object}  domain.Cart
// @Failure      401  {object}  response.Err
// @Router       /cart/lines/{lineID} [delete]
// @Security BearerAuth
func (h *CartHandler) HandleRemoveLine(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	h.svc.RemoveLine(session.ID, ctx.Param("lineID"))

	ctx.JSON(http.StatusOK, h.svc.Get(session.ID))
}

// HandleResetCart godoc
// @Summary      Discard the session's cart
// @Tags         cart
// @Success      204
// @Failure      401  {object}  response.Err
// @Router       /cart [delete]
// @Security BearerAuth
func (h *CartHandler) HandleResetCart(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	h.svc.Reset(session.ID)

	ctx.Status(http.StatusNoContent)
}

func renderCartErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
