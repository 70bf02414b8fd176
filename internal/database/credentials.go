package database

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentalmanager/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already taken")
)

// Credential holds the password hash of a user.
type Credential struct {
	UserID       int64 `gorm:"primaryKey;autoIncrement:false"`
	PasswordHash string
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}
	return string(hash), nil
}

// SetPassword stores a new password for the user.
func SetPassword(db *gorm.DB, userID int64, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return db.Save(&Credential{UserID: userID, PasswordHash: hash}).Error
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(db *gorm.DB, userID int64, password string) bool {
	var cred Credential
	if err := db.First(&cred, "user_id = ?", userID).Error; err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) == nil
}

// Authenticate returns the user owning email when password matches.
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	var user models.User
	err := db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrInvalidCredentials
	}
	if err != nil {
		return user, fmt.Errorf("failed to query user: %v", err)
	}
	if !CheckPassword(db, user.ID, password) {
		return user, ErrInvalidCredentials
	}
	return user, nil
}

// EmailTaken reports whether another user already uses email.
func EmailTaken(db *gorm.DB, email string, exceptID int64) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %v", err)
	}
	return count > 0, nil
}

// EnsureAdmin creates an admin account when no user owns email yet.
func (d *Database) EnsureAdmin(name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	return d.db.Transaction(func(tx *gorm.DB) error {
		taken, err := EmailTaken(tx, email, 0)
		if err != nil || taken {
			return err
		}
		user := models.User{Name: name, Email: email, Role: models.RoleAdmin, IsEmailVerified: true}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin: %v", err)
		}
		if err := SetPassword(tx, user.ID, password); err != nil {
			return err
		}
		d.logger.WithField("email", email).Info("Created admin account")
		return nil
	})
}
