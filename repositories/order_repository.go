package repositories

import (
	"context"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Place commits the whole placement in one transaction: the order row,
// its items, the loyalty-point increment and the cart wipe. Either the
// order exists with its side effects or nothing happened.
func (r *OrderRepository) Place(ctx context.Context, order *models.Order, pointsToAdd int64) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin placement")
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, customer_name, delivery_address,
		                     delivery_method, payment_method, total, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING id, created_at`,
		order.OrderNumber, order.UserID, order.CustomerName, order.DeliveryAddress,
		order.DeliveryMethod, order.PaymentMethod, order.Total, order.Status, now).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, name, description, quantity, price)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			item.OrderID, item.ProductID, item.Name, item.Description, item.Quantity, item.Price).
			Scan(&item.ID)
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	if pointsToAdd > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE users SET points = points + $1, version = version + 1, updated_at = $2 WHERE id = $3`,
			pointsToAdd, now, order.UserID)
		if err != nil {
			return errors.Wrap(err, "add loyalty points")
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		return errors.Wrap(err, "clear cart")
	}

	return errors.Wrap(tx.Commit(ctx), "commit placement")
}

func (r *OrderRepository) SetCheckoutURL(ctx context.Context, orderID int, url string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE orders SET checkout_url = $1, updated_at = $2 WHERE id = $3`,
		url, time.Now(), orderID)
	return errors.Wrap(err, "set checkout url")
}

func (r *OrderRepository) FindAllByUser(ctx context.Context, userID, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}

	rows, err := config.DB.Query(ctx,
		`SELECT id, order_number, user_id, customer_name, delivery_address,
		        delivery_method, payment_method, total, status, checkout_url, created_at
		 FROM orders WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.DeliveryAddress,
			&o.DeliveryMethod, &o.PaymentMethod, &o.Total, &o.Status, &o.CheckoutURL, &o.CreatedAt)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scan order")
		}
		orders = append(orders, o)
	}

	return orders, total, rows.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, userID, orderID int) (*models.Order, error) {
	o := &models.Order{}
	err := config.DB.QueryRow(ctx,
		`SELECT id, order_number, user_id, customer_name, delivery_address,
		        delivery_method, payment_method, total, status, checkout_url, created_at
		 FROM orders WHERE id = $1 AND user_id = $2`,
		orderID, userID).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.DeliveryAddress,
		&o.DeliveryMethod, &o.PaymentMethod, &o.Total, &o.Status, &o.CheckoutURL, &o.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "get order")
	}

	rows, err := config.DB.Query(ctx,
		`SELECT id, order_id, product_id, name, description, quantity, price
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		o.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list order items")
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Description, &item.Quantity, &item.Price)
		if err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}
		o.Items = append(o.Items, item)
	}

	return o, rows.Err()
}
