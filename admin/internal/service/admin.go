package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/nayarn/admin/internal/otel"
	"github.com/Alturino/nayarn/admin/pkg/request"
	"github.com/Alturino/nayarn/internal/auth"
	"github.com/Alturino/nayarn/internal/config"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
)

type AdminService struct {
	account config.Admin
	secret  []byte
	now     func() time.Time
}

func NewAdminService(account config.Admin, secret []byte, now func() time.Time) *AdminService {
	if now == nil {
		now = time.Now
	}
	return &AdminService{account: account, secret: secret, now: now}
}

// Login exchanges the back office credentials for a bearer token. Unknown
// emails and wrong passwords fail the same way.
func (s *AdminService) Login(c context.Context, param request.LoginRequest) (string, error) {
	c, span := otel.Tracer.Start(c, "AdminService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	emailMatch := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(param.Email)),
		[]byte(strings.ToLower(s.account.Email)),
	) == 1
	err := bcrypt.CompareHashAndPassword([]byte(s.account.PasswordHash), []byte(param.Password))
	if s.account.Email == "" || !emailMatch || err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrInvalidCredentials)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	token, err := auth.IssueAdminToken(s.secret, s.account.Email, s.account.TokenTTL, s.now())
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("signed token")

	return token, nil
}

// HashPassword produces the value stored in admin.password_hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed hashing password with error=%w", err)
	}
	return string(hashed), nil
}
