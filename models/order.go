package models

import "time"

const (
	OrderStatusPending = "Pending"

	DeliveryCashOnDelivery = "cash_on_delivery"
	DeliveryEwallet        = "ewallet"
	DeliveryPoints         = "points"
)

type Order struct {
	ID              int         `json:"id"`
	OrderNumber     string      `json:"order_number"`
	UserID          int         `json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryMethod  string      `json:"delivery_method"`
	PaymentMethod   string      `json:"payment_method"`
	Total           string      `json:"total"`
	Status          string      `json:"status"`
	CheckoutURL     string      `json:"checkout_url,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id"`
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

func ValidDeliveryMethod(m string) bool {
	return m == DeliveryCashOnDelivery || m == DeliveryEwallet || m == DeliveryPoints
}
