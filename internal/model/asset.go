package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies what a user owns.
type AssetType string

const (
	AssetHome       AssetType = "home"
	AssetVehicle    AssetType = "vehicle"
	AssetInvestment AssetType = "investment"
	AssetSavings    AssetType = "savings"
	AssetChecking   AssetType = "checking"
	AssetRetirement AssetType = "retirement"
	AssetOther      AssetType = "other"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetHome, AssetVehicle, AssetInvestment, AssetSavings, AssetChecking, AssetRetirement, AssetOther:
		return true
	}
	return false
}

// Liquid reports whether the asset counts toward an emergency fund.
func (t AssetType) Liquid() bool {
	return t == AssetSavings || t == AssetChecking
}

// Asset is something of value a user owns.
type Asset struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Type        AssetType       `json:"type"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
