package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nayarn/admin/pkg/request"
	"github.com/Alturino/nayarn/internal/auth"
	"github.com/Alturino/nayarn/internal/config"
	inErrors "github.com/Alturino/nayarn/internal/errors"
)

func TestLogin(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	secret := []byte("secret")
	s := NewAdminService(config.Admin{
		Email:        "admin@nayarn.com",
		PasswordHash: hash,
		TokenTTL:     time.Hour,
	}, secret, nil)

	testCases := []struct {
		name  string
		param request.LoginRequest
		err   error
	}{
		{name: "valid credentials", param: request.LoginRequest{Email: "Admin@nayarn.com", Password: "s3cret"}},
		{name: "wrong password", param: request.LoginRequest{Email: "admin@nayarn.com", Password: "guess"}, err: inErrors.ErrInvalidCredentials},
		{name: "unknown email", param: request.LoginRequest{Email: "someone@nayarn.com", Password: "s3cret"}, err: inErrors.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := s.Login(context.Background(), tc.param)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)

			subject, err := auth.VerifyAdminToken(context.Background(), secret, token)
			require.NoError(t, err)
			assert.Equal(t, "admin@nayarn.com", subject)
		})
	}
}

func TestLoginWithoutAccount(t *testing.T) {
	_, err := NewAdminService(config.Admin{}, []byte("secret"), nil).
		Login(context.Background(), request.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
}
