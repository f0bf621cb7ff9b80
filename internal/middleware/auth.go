package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/auth"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
)

type adminSubject struct{}

func AdminFromContext(c context.Context) string {
	s, _ := c.Value(adminSubject{}).(string)
	return s
}

// Auth rejects requests without a valid admin bearer token.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get(inHttp.KeyHeaderAuthorization)
			scheme, token, ok := strings.Cut(authorization, " ")
			if authorization == "" || !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteError(c, w, map[string]string{}, inErrors.ErrEmptyAuth)
				return
			}

			subject, err := auth.VerifyAdminToken(c, secret, token)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteError(c, w, map[string]string{}, inErrors.ErrTokenInvalid)
				return
			}

			c = context.WithValue(c, adminSubject{}, subject)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
