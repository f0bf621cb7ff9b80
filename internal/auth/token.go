package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/constants"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/log"
)

// IssueAdminToken signs an HS256 token accepted by the admin routes.
func IssueAdminToken(secret []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    constants.APP_SHOP_SERVICE,
		Audience:  jwt.ClaimStrings{constants.AUDIENCE_ADMIN},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed signing token with error=%w", err)
	}
	return token, nil
}

// VerifyAdminToken returns the token subject when the token is valid.
func VerifyAdminToken(c context.Context, secret []byte, token string) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "auth VerifyAdminToken").
		Str(log.KeyProcess, "parsing claims").
		Logger()

	claims := jwt.RegisteredClaims{}
	logger.Trace().Msg("parsing claims")
	jwtToken, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithAudience(constants.AUDIENCE_ADMIN),
		jwt.WithIssuer(constants.APP_SHOP_SERVICE),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", errors.Join(inErrors.ErrTokenInvalid, err))
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if !jwtToken.Valid || claims.Subject == "" {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return "", inErrors.ErrTokenInvalid
	}
	logger.Trace().Str("subject", claims.Subject).Msg("parsed claims")

	return claims.Subject, nil
}

