package services

import (
	"errors"
	"strings"

	"github.com/Maryelmnaouar/PMP-PLATEFORM/catalog"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/constants"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/models"
	"github.com/Maryelmnaouar/PMP-PLATEFORM/utils"

	"gorm.io/gorm"
)

var (
	ErrMissingFields     = errors.New("username, password, line and machines are all required")
	ErrDuplicateUsername = errors.New("username already taken")
)

// CreateUser registers an account for the given production line and machine
// set. The role comes from classifying the free-text role hint; a duplicate
// username leaves the store untouched.
func CreateUser(db *gorm.DB, username, password, roleHint, prodLine string, machines []string) (*models.User, error) {
	cleaned := make([]string, 0, len(machines))
	for _, m := range machines {
		if m = strings.TrimSpace(m); m != "" {
			cleaned = append(cleaned, m)
		}
	}
	if username == "" || password == "" || prodLine == "" || len(cleaned) == 0 {
		return nil, ErrMissingFields
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         catalog.ClassifyRole(roleHint),
		ProdLine:     prodLine,
	}
	user.SetMachines(cleaned)

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a non-admin account together with every task assigned
// to it. Admin accounts and unknown ids are rejected.
func DeleteUser(db *gorm.DB, userID uint) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if user.Role == constants.RoleAdmin {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assigned_to = ?", userID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// ChangePassword rehashes and stores a new password for the user.
func ChangePassword(db *gorm.DB, userID uint, newPassword string) error {
	if newPassword == "" {
		return ErrMissingFields
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	res := db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
