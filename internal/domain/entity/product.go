package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taskstore-api/internal/domain"
)

// Estados de stock derivados.
const (
	StockOut = "out-of-stock"
	StockLow = "low-stock"
	StockIn  = "in-stock"
)

// MaxMoney cota exclusiva de los importes: la columna es NUMERIC(12, 2).
var MaxMoney = decimal.New(1, 10)

// DefaultLowStockThreshold umbral de stock bajo si no se indica otro.
const DefaultLowStockThreshold = 10

// Categories enum de categorías de producto.
var Categories = []string{"electronics", "clothing", "books", "home", "sports", "toys", "food", "other"}

// ValidCategory indica si c pertenece al enum.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ProductImage imagen de catálogo.
type ProductImage struct {
	URL       string
	Alt       string
	IsPrimary bool
}

// Ratings agregado de valoraciones.
type Ratings struct {
	Average float64
	Count   int
}

// Product artículo de catálogo con precio y stock.
type Product struct {
	ID                string
	Name              string
	Description       string
	SKU               string // único, en mayúsculas
	Price             decimal.Decimal
	ComparePrice      *decimal.Decimal
	CostPrice         *decimal.Decimal
	Stock             int
	LowStockThreshold int
	Category          string
	Tags              []string
	Images            []ProductImage
	Ratings           Ratings
	IsActive          bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Creator *UserRef // expandido en lectura
}

// NormalizeSKU trim + mayúsculas.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// NormalizeImages deja como máximo una imagen principal: la primera marcada.
func (p *Product) NormalizeImages() {
	seen := false
	for i := range p.Images {
		if !p.Images[i].IsPrimary {
			continue
		}
		if seen {
			p.Images[i].IsPrimary = false
			continue
		}
		seen = true
	}
}

// Normalize se aplica antes de cada persistencia.
func (p *Product) Normalize() {
	p.SKU = NormalizeSKU(p.SKU)
	p.NormalizeImages()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}

// DiscountPercentage porcentaje redondeado de descuento sobre comparePrice; 0 si no aplica.
func (p *Product) DiscountPercentage() int {
	if p.ComparePrice == nil || !p.ComparePrice.GreaterThan(p.Price) {
		return 0
	}
	pct := p.ComparePrice.Sub(p.Price).Div(*p.ComparePrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// ProfitMargin margen sobre precio con 2 decimales; nil sin costPrice o con precio 0.
func (p *Product) ProfitMargin() *decimal.Decimal {
	if p.CostPrice == nil || !p.Price.IsPositive() {
		return nil
	}
	m := p.Price.Sub(*p.CostPrice).Div(p.Price).Mul(decimal.NewFromInt(100)).Round(2)
	return &m
}

// StockStatus clasificación derivada del stock.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock == 0:
		return StockOut
	case p.Stock <= p.LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// PrimaryImage imagen principal, o nil.
func (p *Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

// Validate revisa el esquema completo; se usa en create y tras un update parcial.
func (p *Product) Validate() error {
	v := &domain.ValidationError{}
	switch n := utf8.RuneCountInString(strings.TrimSpace(p.Name)); {
	case n == 0:
		v.Add("name", "Product name is required")
	case n > 100:
		v.Add("name", "Product name cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(p.Description) > 1000 {
		v.Add("description", "Description cannot exceed 1000 characters")
	}
	if p.SKU == "" {
		v.Add("sku", "SKU is required")
	}
	checkMoney(v, "price", "Price", p.Price)
	if p.ComparePrice != nil {
		checkMoney(v, "comparePrice", "Compare price", *p.ComparePrice)
	}
	if p.CostPrice != nil {
		checkMoney(v, "costPrice", "Cost price", *p.CostPrice)
	}
	if p.Stock < 0 {
		v.Add("stock", "Stock cannot be negative")
	}
	if p.LowStockThreshold < 0 {
		v.Add("lowStockThreshold", "Low stock threshold cannot be negative")
	}
	if !ValidCategory(p.Category) {
		v.Add("category", "Category must be one of: %s", strings.Join(Categories, ", "))
	}
	if p.Ratings.Average < 0 || p.Ratings.Average > 5 {
		v.Add("ratings.average", "Rating average must be between 0 and 5")
	}
	if p.Ratings.Count < 0 {
		v.Add("ratings.count", "Rating count cannot be negative")
	}
	for _, img := range p.Images {
		if strings.TrimSpace(img.URL) == "" {
			v.Add("images", "Image url is required")
			break
		}
	}
	return v.OrNil()
}

// checkMoney importe no negativo, por debajo de MaxMoney y con 2 decimales como máximo.
func checkMoney(v *domain.ValidationError, field, label string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		v.Add(field, "%s cannot be negative", label)
	case d.GreaterThanOrEqual(MaxMoney):
		v.Add(field, "%s cannot exceed 9999999999.99", label)
	case !d.Equal(d.Truncate(2)):
		v.Add(field, "%s cannot have more than 2 decimal places", label)
	}
}
