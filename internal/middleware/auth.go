package middleware

import (
	"context"
	"strings"

	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/alimikegami/bulknest-server/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Verifier turns a bearer token into the email it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (email string, err error)
}

// IsLoggedIn requires an "Authorization: Bearer <token>" header and stores
// the verified email under utils.TokenEmailKey.
func IsLoggedIn(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			email, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "IsLoggedIn").Msg("")
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set(utils.TokenEmailKey, email)

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
