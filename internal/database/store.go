package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page selects one page of a list. Zero values fall back to page 1 and
// DefaultLimit.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Scope narrows a query, e.g. to the children of a parent record.
type Scope func(*gorm.DB) *gorm.DB

// Result is one page of records plus the totals over all pages.
type Result[E any] struct {
	Records      []E
	Page         int
	Limit        int
	TotalPages   int
	TotalResults int64
}

// List returns one page of records ordered by id.
func List[E any](db *gorm.DB, page Page, scopes ...Scope) (Result[E], error) {
	page = page.normalize()

	query := db.Model(new(E))
	for _, scope := range scopes {
		query = scope(query)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return Result[E]{}, fmt.Errorf("failed to count records: %v", err)
	}

	records := make([]E, 0, page.Limit)
	err := query.Order("id").Offset((page.Page - 1) * page.Limit).Limit(page.Limit).Find(&records).Error
	if err != nil {
		return Result[E]{}, fmt.Errorf("failed to query records: %v", err)
	}

	pages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return Result[E]{
		Records:      records,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   pages,
		TotalResults: total,
	}, nil
}

func Get[E any](db *gorm.DB, id int64, scopes ...Scope) (E, error) {
	var record E
	query := db.Model(new(E))
	for _, scope := range scopes {
		query = scope(query)
	}
	err := query.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, ErrNotFound
	}
	if err != nil {
		return record, fmt.Errorf("failed to query record: %v", err)
	}
	return record, nil
}

func Create[E any](db *gorm.DB, record *E) error {
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// Save writes every column of an existing record.
func Save[E any](db *gorm.DB, record *E) error {
	if err := db.Save(record).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func Delete[E any](db *gorm.DB, id int64) error {
	result := db.Delete(new(E), id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Where returns a scope matching column = value.
func Where(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// Like returns a scope matching column against a case-insensitive substring.
func Like(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE LOWER(?)", "%"+value+"%")
	}
}

// RoomsOfProperty restricts contracts to the rooms of a property.
func RoomsOfProperty(propertyID int64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("room_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table("rooms").Select("id").Where("property_id = ?", propertyID))
	}
}

// ContractsOfProperty restricts invoices to the contracts of a property.
func ContractsOfProperty(propertyID int64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		rooms := db.Session(&gorm.Session{NewDB: true}).Table("rooms").Select("id").Where("property_id = ?", propertyID)
		return db.Where("contract_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table("contracts").Select("id").Where("room_id IN (?)", rooms))
	}
}

// TenantsOfProperty restricts tenants to those holding a contract in a
// property.
func TenantsOfProperty(propertyID int64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		rooms := db.Session(&gorm.Session{NewDB: true}).Table("rooms").Select("id").Where("property_id = ?", propertyID)
		return db.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Table("contracts").Select("tenant_id").Where("room_id IN (?)", rooms))
	}
}
