package app

import (
	"errors"
	"time"

	"github.com/bioquip/bioquip/internal/domain"
	"github.com/bioquip/bioquip/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// checkAdmin provisions the back-office operator account if absent. The
// bootstrap is idempotent; an existing account is never overwritten.
func (a *Application) checkAdmin() {
	cfg := a.appConfig.Admin

	var admin domain.SysAdmin
	err := a.gormDB.Where("email = ?", cfg.Email).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cost := cfg.BcryptCost
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		hash, herr := bcrypt.GenerateFromPassword([]byte(cfg.Password), cost)
		if herr != nil {
			zap.L().Error("failed to hash bootstrap admin password", zap.Error(herr))
			return
		}
		if cerr := a.gormDB.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Name:      cfg.Name,
			Email:     cfg.Email,
			Password:  string(hash),
			LastLogin: time.Now(),
		}).Error; cerr != nil {
			zap.L().Error("failed to create bootstrap admin", zap.Error(cerr))
			return
		}
		zap.L().Info("initialized bootstrap admin account", zap.String("email", cfg.Email))
	case err != nil:
		zap.L().Error("failed to query bootstrap admin", zap.Error(err))
	}
}
