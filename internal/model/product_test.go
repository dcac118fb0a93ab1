package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Name:        "Trail Running Shoes",
		Description: "Lightweight trail shoes with a grippy outsole.",
		Price:       decimal.NewFromFloat(74.90),
		Image:       "https://cdn.example.com/shoes.jpg",
		Category:    CategorySports,
		Brand:       DefaultBrand,
		Stock:       25,
		IsActive:    true,
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Product)
		wantField string
	}{
		{"valid product", func(p *Product) {}, ""},
		{"missing name", func(p *Product) { p.Name = "" }, "name"},
		{"missing description", func(p *Product) { p.Description = "" }, "description"},
		{"zero price", func(p *Product) { p.Price = decimal.Zero }, "price"},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromFloat(-1) }, "price"},
		{"unknown category", func(p *Product) { p.Category = "groceries" }, "category"},
		{"negative stock", func(p *Product) { p.Stock = -1 }, "stock"},
		{"rating above five", func(p *Product) { p.Rating = 5.1 }, "rating"},
		{"image without extension", func(p *Product) { p.Image = "https://cdn.example.com/shoes" }, "image"},
		{"image with wrong extension", func(p *Product) { p.Image = "https://cdn.example.com/shoes.svg" }, "image"},
		{"image with query string", func(p *Product) { p.Image = "https://cdn.example.com/shoes.PNG?w=200" }, ""},
		{"gif image", func(p *Product) { p.Image = "https://cdn.example.com/spin.gif" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			errs := p.Validate()
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			if assert.NotEmpty(t, errs) {
				fields := make([]string, 0, len(errs))
				for _, e := range errs {
					fields = append(fields, e.Field)
					assert.NotEmpty(t, e.Message)
				}
				assert.Contains(t, fields, tt.wantField)
			}
		})
	}
}

func TestProductValidate_NameLength(t *testing.T) {
	p := validProduct()
	for len(p.Name) <= 100 {
		p.Name += "x"
	}
	errs := p.Validate()
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Messages()[0], "name")
}

func TestProductApplyRating(t *testing.T) {
	t.Run("first rating sets the mean directly", func(t *testing.T) {
		p := validProduct()
		p.ApplyRating(4)
		assert.Equal(t, 4.0, p.Rating)
		assert.Equal(t, 1, p.RatingCount)
	})

	t.Run("n ratings yield the running mean", func(t *testing.T) {
		values := []float64{5, 3, 4, 1, 2, 5, 4.5}
		p := validProduct()

		sum := 0.0
		for _, v := range values {
			p.ApplyRating(v)
			sum += v
		}

		assert.Equal(t, len(values), p.RatingCount)
		assert.InDelta(t, sum/float64(len(values)), p.Rating, 1e-9)
	})
}

func TestUserValidate(t *testing.T) {
	u := User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleUser,
	}
	assert.Empty(t, u.Validate())

	u.Email = "not-an-email"
	errs := u.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "email", errs[0].Field)
	}

	u.Email = "alice@example.com"
	u.Role = "superuser"
	errs = u.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "role", errs[0].Field)
	}
}
