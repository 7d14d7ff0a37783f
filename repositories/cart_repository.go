package repositories

import (
	"context"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// List returns the cart joined with the current catalog row for each
// product. Totals are always computed from these live prices, never
// from anything remembered at add-to-cart time.
func (r *CartRepository) List(ctx context.Context, userID int) ([]models.CartItem, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		        p.id, p.name, p.description, p.price, p.image_url, p.is_active, p.created_at, p.updated_at
		 FROM cart_items ci
		 JOIN products p ON ci.product_id = p.id
		 WHERE ci.user_id = $1
		 ORDER BY ci.created_at, ci.id`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart")
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan cart item")
		}
		item.Product = &p
		items = append(items, item)
	}

	return items, rows.Err()
}

// Add inserts the product or bumps its quantity if it is already in
// the cart.
func (r *CartRepository) Add(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	now := time.Now()
	err := config.DB.QueryRow(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		 RETURNING id, quantity, created_at, updated_at`,
		userID, productID, quantity, now).Scan(
		&item.ID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}

	return item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID, quantity int) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE user_id = $3 AND id = $4`,
		quantity, time.Now(), userID, itemID)
	if err != nil {
		return errors.Wrap(err, "update cart item")
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, itemID int) error {
	tag, err := config.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND id = $2`,
		userID, itemID)
	if err != nil {
		return errors.Wrap(err, "remove cart item")
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return errors.Wrap(err, "clear cart")
}
