package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taskstore-api/internal/domain/entity"
)

// ImageDTO imagen de catálogo.
type ImageDTO struct {
	URL       string `json:"url" validate:"required"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// RatingsDTO valoraciones agregadas.
type RatingsDTO struct {
	Average float64 `json:"average" validate:"min=0,max=5"`
	Count   int     `json:"count" validate:"min=0"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,max=100"`
	Description       string           `json:"description" validate:"max=1000"`
	SKU               string           `json:"sku" validate:"required,max=64"`
	Price             decimal.Decimal  `json:"price"`
	ComparePrice      *decimal.Decimal `json:"comparePrice"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	Stock             int              `json:"stock" validate:"min=0"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"omitempty,min=0"`
	Category          string           `json:"category" validate:"required,oneof=electronics clothing books home sports toys food other"`
	Tags              []string         `json:"tags" validate:"omitempty,dive,max=50"`
	Images            []ImageDTO       `json:"images" validate:"omitempty,dive"`
	Ratings           *RatingsDTO      `json:"ratings"`
	IsActive          *bool            `json:"isActive"`
}

// UpdateProductRequest actualización parcial; el resultado se revalida contra la entidad.
// comparePrice y costPrice admiten null para quitarlos.
type UpdateProductRequest struct {
	Name              *string                   `json:"name" validate:"omitempty,max=100"`
	Description       *string                   `json:"description" validate:"omitempty,max=1000"`
	SKU               *string                   `json:"sku" validate:"omitempty,max=64"`
	Price             *decimal.Decimal          `json:"price"`
	ComparePrice      Nullable[decimal.Decimal] `json:"comparePrice"`
	CostPrice         Nullable[decimal.Decimal] `json:"costPrice"`
	Stock             *int                      `json:"stock" validate:"omitempty,min=0"`
	LowStockThreshold *int                      `json:"lowStockThreshold" validate:"omitempty,min=0"`
	Category          *string                   `json:"category" validate:"omitempty,oneof=electronics clothing books home sports toys food other"`
	Tags              []string                  `json:"tags" validate:"omitempty,dive,max=50"`
	Images            *[]ImageDTO               `json:"images" validate:"omitempty,dive"`
	Ratings           *RatingsDTO               `json:"ratings"`
	IsActive          *bool                     `json:"isActive"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Active   bool   `query:"active"`
	Category string `query:"category" validate:"omitempty,oneof=electronics clothing books home sports toys food other"`
	Search   string `query:"search" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto con derivados.
type ProductResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	SKU                string           `json:"sku"`
	Price              decimal.Decimal  `json:"price"`
	ComparePrice       *decimal.Decimal `json:"comparePrice,omitempty"`
	CostPrice          *decimal.Decimal `json:"costPrice,omitempty"`
	Stock              int              `json:"stock"`
	LowStockThreshold  int              `json:"lowStockThreshold"`
	Category           string           `json:"category"`
	Tags               []string         `json:"tags"`
	Images             []ImageDTO       `json:"images"`
	Ratings            RatingsDTO       `json:"ratings"`
	IsActive           bool             `json:"isActive"`
	CreatedBy          *UserRefResponse `json:"createdBy"`
	DiscountPercentage int              `json:"discountPercentage"`
	ProfitMargin       *decimal.Decimal `json:"profitMargin"`
	StockStatus        string           `json:"stockStatus"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// ToProductResponse proyecta la entidad con sus campos derivados.
func ToProductResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		SKU:                p.SKU,
		Price:              p.Price,
		ComparePrice:       p.ComparePrice,
		CostPrice:          p.CostPrice,
		Stock:              p.Stock,
		LowStockThreshold:  p.LowStockThreshold,
		Category:           p.Category,
		Tags:               p.Tags,
		Images:             make([]ImageDTO, 0, len(p.Images)),
		Ratings:            RatingsDTO{Average: p.Ratings.Average, Count: p.Ratings.Count},
		IsActive:           p.IsActive,
		CreatedBy:          ToUserRef(p.Creator),
		DiscountPercentage: p.DiscountPercentage(),
		ProfitMargin:       p.ProfitMargin(),
		StockStatus:        p.StockStatus(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.CreatedBy == nil && p.CreatedBy != "" {
		out.CreatedBy = &UserRefResponse{ID: p.CreatedBy}
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, ImageDTO{URL: img.URL, Alt: img.Alt, IsPrimary: img.IsPrimary})
	}
	return out
}

// ToProductResponses proyecta una lista.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToImages convierte la entrada en entidades.
func ToImages(in []ImageDTO) []entity.ProductImage {
	out := make([]entity.ProductImage, 0, len(in))
	for _, img := range in {
		out = append(out, entity.ProductImage{URL: img.URL, Alt: img.Alt, IsPrimary: img.IsPrimary})
	}
	return out
}
