package cmd

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/admin/internal/controller"
	"github.com/Alturino/nayarn/admin/internal/service"
	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/log"
)

func AttachAdminService(c context.Context, router *mux.Router, account config.Admin, secret []byte) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachAdminService").
		Str(log.KeyProcess, "attaching admin controller").
		Str(log.KeyEmail, account.Email).
		Logger()

	if account.PasswordHash == "" {
		logger.Warn().Msg("admin.password_hash is empty, admin login is disabled")
	}

	logger.Info().Msg("attaching admin controller")
	controller.AttachAdminController(router, service.NewAdminService(account, secret, time.Now))
	logger.Info().Msg("attached admin controller")
}

func HashPassword(password string) (string, error) {
	return service.HashPassword(password)
}
