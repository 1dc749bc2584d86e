package orders

// StatusCreated is the only order status the intake pipeline assigns.
// Later lifecycle states belong to fulfillment, outside this module.
const StatusCreated = "created"

// Customer, Delivery, Payment and Item mirror the submitted payload; the
// order record is fully denormalized so a single read returns everything.

type Customer struct {
	Name  string `json:"name" dynamodbav:"name"`
	Phone string `json:"phone" dynamodbav:"phone"`
}

type Delivery struct {
	Date    string `json:"date" dynamodbav:"date"`
	Time    string `json:"time" dynamodbav:"time"`
	Address string `json:"address" dynamodbav:"address"`
	Notes   string `json:"notes" dynamodbav:"notes"`
}

type PaymentDetails struct {
	CashChangeFor     string `json:"cashChangeFor" dynamodbav:"cashChangeFor"`
	TransferReference string `json:"transferReference" dynamodbav:"transferReference"`
	TransferClabe     string `json:"transferClabe" dynamodbav:"transferClabe"`
	CardHolder        string `json:"cardHolder" dynamodbav:"cardHolder"`
	CardLast4         string `json:"cardLast4" dynamodbav:"cardLast4"`
}

type Payment struct {
	Method  string         `json:"method" dynamodbav:"method"`
	Details PaymentDetails `json:"details" dynamodbav:"details"`
}

type Item struct {
	ProductID string  `json:"productId" dynamodbav:"productId"`
	Name      string  `json:"name" dynamodbav:"name"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity"`
	Price     float64 `json:"price" dynamodbav:"price"`
}

// Order is the record persisted in the orders table, exclusively owned by
// the table once written. Delivery date/time and payment method are lifted
// to the top level for the notification and reporting paths.
type Order struct {
	OrderID       string   `json:"orderId" dynamodbav:"id"` // PK
	CreatedAt     string   `json:"createdAt" dynamodbav:"createdAt"`     // RFC3339 UTC
	RequestedAt   string   `json:"requestedAt" dynamodbav:"requestedAt"` // same stamp as CreatedAt
	Status        string   `json:"status" dynamodbav:"status"`
	DeliveryDate  string   `json:"deliveryDate" dynamodbav:"deliveryDate"`
	DeliveryTime  string   `json:"deliveryTime" dynamodbav:"deliveryTime"`
	PaymentMethod string   `json:"paymentMethod" dynamodbav:"paymentMethod"`
	Total         float64  `json:"total" dynamodbav:"total"`
	Customer      Customer `json:"customer" dynamodbav:"customer"`
	Delivery      Delivery `json:"delivery" dynamodbav:"delivery"`
	Payment       Payment  `json:"payment" dynamodbav:"payment"`
	Items         []Item   `json:"items" dynamodbav:"items"`
}
