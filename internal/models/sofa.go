package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sofa is the flat legacy catalog record.
type Sofa struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"not null"`
	Type        string          `json:"type" gorm:"not null;index"`
	Width       int             `json:"width" gorm:"not null"`
	Depth       int             `json:"depth" gorm:"not null"`
	Height      int             `json:"height" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Comfort     string          `json:"comfort" gorm:"not null"`
	InStore     bool            `json:"inStore" gorm:"not null;default:false"`
	InStock     bool            `json:"inStock" gorm:"not null;default:false"`
	OnOrder     bool            `json:"onOrder" gorm:"not null;default:false"`
	MainImage   string          `json:"mainImage" gorm:"not null"`
	Images      []string        `json:"images" gorm:"serializer:json;type:text;not null"`
	Description *string         `json:"description"`
	Features    []string        `json:"features" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time       `json:"-"`
}

// MarshalJSON renders the price with two decimals, as stored.
func (s Sofa) MarshalJSON() ([]byte, error) {
	type plain Sofa
	return json.Marshal(struct {
		plain
		Price string `json:"price"`
	}{plain: plain(s), Price: s.Price.StringFixed(2)})
}

type SofaType string

const (
	SofaTypeFixed       SofaType = "fixe"
	SofaTypeConvertible SofaType = "convertible"
	SofaTypeArmchair    SofaType = "fauteuil"
	SofaTypeChaise      SofaType = "meridienne"
)

// SofaUpdate carries a partial update; nil fields are left untouched.
type SofaUpdate struct {
	Name        *string          `json:"name"`
	Type        *string          `json:"type"`
	Width       *int             `json:"width"`
	Depth       *int             `json:"depth"`
	Height      *int             `json:"height"`
	Price       *decimal.Decimal `json:"price"`
	Comfort     *string          `json:"comfort"`
	InStore     *bool            `json:"inStore"`
	InStock     *bool            `json:"inStock"`
	OnOrder     *bool            `json:"onOrder"`
	MainImage   *string          `json:"mainImage"`
	Images      []string         `json:"images"`
	Description *string          `json:"description"`
	Features    []string         `json:"features"`
}

// Apply copies the set fields of u onto s.
func (u SofaUpdate) Apply(s *Sofa) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Type != nil {
		s.Type = *u.Type
	}
	if u.Width != nil {
		s.Width = *u.Width
	}
	if u.Depth != nil {
		s.Depth = *u.Depth
	}
	if u.Height != nil {
		s.Height = *u.Height
	}
	if u.Price != nil {
		s.Price = *u.Price
	}
	if u.Comfort != nil {
		s.Comfort = *u.Comfort
	}
	if u.InStore != nil {
		s.InStore = *u.InStore
	}
	if u.InStock != nil {
		s.InStock = *u.InStock
	}
	if u.OnOrder != nil {
		s.OnOrder = *u.OnOrder
	}
	if u.MainImage != nil {
		s.MainImage = *u.MainImage
	}
	if u.Images != nil {
		s.Images = append([]string(nil), u.Images...)
	}
	if u.Description != nil {
		s.Description = u.Description
	}
	if u.Features != nil {
		s.Features = append([]string(nil), u.Features...)
	}
}

func (s *Sofa) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	return nil
}
