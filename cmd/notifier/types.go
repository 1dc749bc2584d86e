package main

// OrderSummary is the message published to the notification sink for each
// newly created order. Consumers must tolerate duplicates: retries can
// publish the same order twice.
type OrderSummary struct {
	OrderID       string  `json:"order_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Total         float64 `json:"total"`
	DeliveryDate  string  `json:"delivery_date"`
	PaymentMethod string  `json:"payment_method"`
	CreatedAt     string  `json:"created_at"`
}
