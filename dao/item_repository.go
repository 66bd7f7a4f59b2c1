package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-backend/model"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Insert(ctx context.Context, item *model.Item) error {
	query := `INSERT INTO items (id, seller_id, name, description, price, commission_rate, commission_fee, seller_payout, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.SellerID, item.Name, item.Description, item.Price,
		item.CommissionRate, item.CommissionFee, item.SellerPayout, item.Status, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the item does not exist.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `
		SELECT id, seller_id, name, description, price, commission_rate, commission_fee, seller_payout, status, created_at
		FROM items
		WHERE id = ?
	`
	var item model.Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.SellerID, &item.Name, &item.Description, &item.Price,
		&item.CommissionRate, &item.CommissionFee, &item.SellerPayout, &item.Status, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return &item, nil
}
