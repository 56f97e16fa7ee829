package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silendas/pharmacy-backoffice/internal/api/handler/v1/response"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/pkg/jwthelper"
)

// ContextKeySession is where the authenticator stores the resolved
// session for downstream handlers.
const ContextKeySession = "session"

type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domain.Session, error)
}

type Authenticator struct {
	signingKey []byte
	sessions   SessionResolver
}

func NewAuthenticator(signingKey string, sessions SessionResolver) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		sessions:   sessions,
	}
}

// VerifySession checks the bearer token and loads its session. Any
// failure, including an expired session, renders 401 and stops the
// chain.
func (a *Authenticator) VerifySession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing bearer token")))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid token")))

			return
		}

		session, err := a.sessions.Resolve(ctx.Request.Context(), claims.SessionID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("session invalid or expired")))

			return
		}

		ctx.Set(ContextKeySession, session)
		ctx.Next()
	}
}
