package model

import "github.com/shopspring/decimal"

// Category groups catalog items.
type Category string

const (
	CategoryBeer    Category = "beer"
	CategoryWine    Category = "wine"
	CategorySpirits Category = "spirits"
)

// Categories lists catalog categories in display order.
var Categories = []Category{CategoryBeer, CategoryWine, CategorySpirits}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBeer, CategoryWine, CategorySpirits:
		return true
	}
	return false
}

// CatalogItem describes a purchasable product.
type CatalogItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
	Image    string          `json:"image,omitempty"`
}

// Store is a shop orders are collected from.
type Store struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Distance     decimal.Decimal `json:"distance"`
	DeliveryTime string          `json:"delivery_time"`
	Rating       float64         `json:"rating"`
}
