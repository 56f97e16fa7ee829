package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/request"
	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/config"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/pkg/jwthelper"
	"github.com/silendas/pharmacy-backoffice/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login against the upstream pharmacy API
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		renderUpstreamErr(ctx, err)

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), session.ID, session.ExpiresAt, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	})
}

// HandleLogout godoc
// @Summary      Logout and invalidate the session
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	session, respErr := sessionFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), session.ID); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
