package database

import (
	"fmt"

	"gorm.io/gorm"

	"rentalmanager/internal/models"
)

// PropertyCodes returns every property code in use.
func PropertyCodes(db *gorm.DB) ([]string, error) {
	var codes []string
	if err := db.Model(&models.Property{}).Where("code <> ''").Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to query property codes: %v", err)
	}
	return codes, nil
}

// UniquePropertyCode derives a code from name that no property uses yet.
func UniquePropertyCode(db *gorm.DB, name string) (string, error) {
	codes, err := PropertyCodes(db)
	if err != nil {
		return "", err
	}
	return models.GenerateUniquePropertyCode(name, codes), nil
}
