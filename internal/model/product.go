package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryToys        Category = "toys"
	CategoryBeauty      Category = "beauty"
	CategoryAutomotive  Category = "automotive"
)

// DefaultBrand is applied when a product is created without a brand.
const DefaultBrand = "MadeInIndia"

// Product represents a catalog item.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Description string          `json:"description" gorm:"size:1000;not null" validate:"required,max=1000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null" validate:"required,gt=0"`
	Image       string          `json:"image" gorm:"size:512;not null" validate:"required,image_url"`
	Category    Category        `json:"category" gorm:"type:varchar(20);not null;index" validate:"required,oneof=electronics clothing books home sports toys beauty automotive"`
	Brand       string          `json:"brand" gorm:"size:50;not null;default:'MadeInIndia'" validate:"max=50"`
	Rating      float64         `json:"rating" gorm:"not null;default:0" validate:"gte=0,lte=5"`
	RatingCount int             `json:"rating_count" gorm:"not null;default:0" validate:"gte=0"`
	Stock       int             `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	IsActive    bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID and brand default before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Brand == "" {
		p.Brand = DefaultBrand
	}
	return nil
}

// Validate runs schema validation and returns the flat list of field errors.
func (p *Product) Validate() FieldErrors {
	return validateEntity(p)
}

// ApplyRating folds one rating value into the running mean. The first rating
// sets the mean directly; every accepted value bumps the count exactly once.
func (p *Product) ApplyRating(value float64) {
	if p.RatingCount == 0 {
		p.Rating = value
		p.RatingCount = 1
		return
	}
	oldCount := float64(p.RatingCount)
	p.Rating = (p.Rating*oldCount + value) / (oldCount + 1)
	p.RatingCount++
}
