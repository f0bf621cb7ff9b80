package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

func TestVerifyAdminToken(t *testing.T) {
	secret := []byte("secret")
	now := time.Now()

	tests := []struct {
		name        string
		token       func() string
		expected    string
		expectedErr error
	}{
		{
			name: "given valid token should return subject",
			token: func() string {
				token, err := IssueAdminToken(secret, "admin@nayarn.com", time.Hour, now)
				require.NoError(t, err)
				return token
			},
			expected: "admin@nayarn.com",
		},
		{
			name: "given expired token should return invalid token",
			token: func() string {
				token, err := IssueAdminToken(secret, "admin@nayarn.com", time.Hour, now.Add(-2*time.Hour))
				require.NoError(t, err)
				return token
			},
			expectedErr: inErrors.ErrTokenInvalid,
		},
		{
			name: "given token signed with other secret should return invalid token",
			token: func() string {
				token, err := IssueAdminToken([]byte("other"), "admin@nayarn.com", time.Hour, now)
				require.NoError(t, err)
				return token
			},
			expectedErr: inErrors.ErrTokenInvalid,
		},
		{
			name:        "given garbage should return invalid token",
			token:       func() string { return "not-a-token" },
			expectedErr: inErrors.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := VerifyAdminToken(context.Background(), secret, tt.token())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
