package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ItemStatusOnSale  = "on_sale"
	ItemStatusSold    = "sold"
	ItemStatusDeleted = "deleted"
)

type Item struct {
	ID             string          `json:"id"`
	SellerID       string          `json:"sellerId"` // seller profile id
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          int             `json:"price"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	CommissionFee  int             `json:"commissionFee"`
	SellerPayout   int             `json:"sellerPayout"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}
