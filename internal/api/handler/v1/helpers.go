package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/api/middleware"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

func sessionFromContext(ctx *gin.Context) (domain.Session, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeySession)
	if !exists {
		return domain.Session{}, response.ErrUnauthorized(errors.New("session not found in context"))
	}

	session, ok := value.(domain.Session)
	if !ok {
		return domain.Session{}, response.ErrInternalServerError(errors.New("malformed session in context"))
	}

	return session, nil
}

// renderUpstreamErr maps remote-API failures onto the response
// envelope. Anything not recognizably upstream is an internal error.
func renderUpstreamErr(ctx *gin.Context, err error) {
	var fetchErr *upstream.FetchError
	if errors.As(err, &fetchErr) {
		response.RenderErr(ctx, response.ErrBadGateway(fetchErr))

		return
	}

	var submissionErr *upstream.SubmissionError
	if errors.As(err, &submissionErr) {
		response.RenderErr(ctx, response.ErrBadGateway(submissionErr))

		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
