package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/create-and-design/storefront/internal/aws"
	"github.com/create-and-design/storefront/internal/catalog"
	"github.com/create-and-design/storefront/internal/orders"
	"github.com/create-and-design/storefront/internal/validation"
)

// HandlerConfig groups dependencies for the storefront handlers.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	OrdersTable    string
	Catalog        *catalog.Cache
}

// RegisterOrdersRoutes registers the order intake route.
//
// Responses distinguish "fix your input" from "system problem": 400 carries
// the single rejection message, 500 means the service is misconfigured or
// the store write failed. Notification fan-out never influences the
// response; an order is created once persisted.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)

	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		if cfg.OrdersTable == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "ORDERS_TABLE_NAME is not configured"})
			return
		}

		var sub validation.OrderSubmission
		if err := validation.BindAndValidate(c, &sub); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		now := time.Now()
		if err := validation.CheckSubmission(v, &sub, now); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		// One stamp for both createdAt and requestedAt.
		orderID := uuid.NewString()
		stamp := now.UTC().Format(time.RFC3339Nano)

		order := orders.Order{
			OrderID:       orderID,
			CreatedAt:     stamp,
			RequestedAt:   stamp,
			Status:        orders.StatusCreated,
			DeliveryDate:  sub.Delivery.Date,
			DeliveryTime:  sub.Delivery.Time,
			PaymentMethod: sub.Payment.Method,
			Total:         sub.Total,
			Customer: orders.Customer{
				Name:  sub.Customer.Name,
				Phone: sub.Customer.Phone,
			},
			Delivery: orders.Delivery{
				Date:    sub.Delivery.Date,
				Time:    sub.Delivery.Time,
				Address: sub.Delivery.Address,
				Notes:   sub.Delivery.Notes,
			},
			Payment: orders.Payment{
				Method: sub.Payment.Method,
				Details: orders.PaymentDetails{
					CashChangeFor:     sub.Payment.Details.CashChangeFor,
					TransferReference: sub.Payment.Details.TransferReference,
					TransferClabe:     sub.Payment.Details.TransferClabe,
					CardHolder:        sub.Payment.Details.CardHolder,
					CardLast4:         sub.Payment.Details.CardLast4,
				},
			},
			Items: buildOrderItems(sub.Items),
		}

		if err := store.Create(ctx, order); err != nil {
			log.Printf("[orders] create order=%s failed: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not persist order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId":       orderID,
			"status":        orders.StatusCreated,
			"createdAt":     stamp,
			"requestedAt":   stamp,
			"deliveryDate":  sub.Delivery.Date,
			"deliveryTime":  sub.Delivery.Time,
			"paymentMethod": sub.Payment.Method,
		})
	})
}

func buildOrderItems(items []validation.OrderItem) []orders.Item {
	out := make([]orders.Item, 0, len(items))
	for _, it := range items {
		out = append(out, orders.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return out
}
