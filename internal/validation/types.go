package validation

// Payment methods accepted at checkout.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCard     = "card"
)

// OrderItem is a single purchased line as submitted by the client.
type OrderItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" validate:"min=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Customer identifies who placed the order.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// Delivery describes where and when the order should arrive.
type Delivery struct {
	Date    string `json:"date" validate:"required"` // YYYY-MM-DD
	Time    string `json:"time"`
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes"`
}

// PaymentDetails carries the method-specific fields; unused ones stay empty.
type PaymentDetails struct {
	CashChangeFor     string `json:"cashChangeFor,omitempty"`
	TransferReference string `json:"transferReference,omitempty"`
	TransferClabe     string `json:"transferClabe,omitempty"`
	CardHolder        string `json:"cardHolder,omitempty"`
	CardLast4         string `json:"cardLast4,omitempty"`
}

// Payment selects the payment method and its details.
type Payment struct {
	Method  string         `json:"method" validate:"required,oneof=cash transfer card"`
	Details PaymentDetails `json:"details"`
}

// OrderSubmission is the untrusted payload for POST /orders.
type OrderSubmission struct {
	Customer *Customer   `json:"customer" validate:"required"`
	Delivery *Delivery   `json:"delivery" validate:"required"`
	Payment  *Payment    `json:"payment" validate:"required"`
	Total    float64     `json:"total" validate:"gt=0"`
	Items    []OrderItem `json:"items" validate:"min=1,dive"`
}
