package request

type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

type ListOrders struct {
	Status string
	Search string
}

// TrackOrder looks an order up by the number printed in the confirmation
// email and the address it was sent to.
type TrackOrder struct {
	OrderNumber string `json:"order" validate:"required,min=8,max=36"`
	Email       string `json:"email" validate:"required,email,max=255"`
}

var ValidationMessages = map[string]string{
	"status": "status must be one of pending, confirmed, processing, shipped, delivered, cancelled",
	"order":  "Please enter your order number",
	"email":  "Please enter the email used for your order",
}
