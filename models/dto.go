package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"omitempty,max=100"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Address  string `json:"address" form:"address" binding:"omitempty,max=500"`
	// Version of the profile the client last saw. When non-zero the save is
	// rejected with 409 if the record moved on, so a stale edit session
	// cannot clobber a newer write.
	Version int `json:"version" form:"version"`
}

type AddAddressRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

type UpdateAddressRequest struct {
	Address string `json:"address" binding:"required,max=500"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type SelectAddressRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

type SelectDeliveryRequest struct {
	DeliveryMethod string `json:"delivery_method" binding:"required"`
}

type PurchasePointsRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

type PlaceOrderResponse struct {
	Order       Order  `json:"order"`
	PointsAdded int64  `json:"points_added"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

type CheckoutReview struct {
	Step           string     `json:"step"`
	AddressID      string     `json:"address_id,omitempty"`
	Address        string     `json:"address,omitempty"`
	DeliveryMethod string     `json:"delivery_method"`
	Items          []CartItem `json:"items"`
	Total          string     `json:"total"`
}
