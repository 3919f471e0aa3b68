package service

import (
	"github.com/imperiumao/gm-panel/database"
	"github.com/imperiumao/gm-panel/database/model"
	"github.com/imperiumao/gm-panel/logger"
	"github.com/imperiumao/gm-panel/util/crypto"

	"gorm.io/gorm"
)

// UserService checks login credentials against the users table.
type UserService struct{}

// CheckUser returns the matching active user when the credentials are valid,
// nil otherwise. Banned accounts cannot log in.
func (s *UserService) CheckUser(username string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if user.Banned != 0 {
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}
