package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/create-and-design/storefront/internal/aws"
	"github.com/create-and-design/storefront/internal/catalog"
	"github.com/create-and-design/storefront/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.CORS())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterProductsRoutes(r, cfg)
	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	clients, err := aws.NewAWSClients(context.Background())

	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	var source catalog.Source
	if table := os.Getenv("PRODUCTS_TABLE_NAME"); table != "" {
		source = catalog.NewTableSource(clients.DynamoDB, table)
	}

	var mirror catalog.Mirror
	if url := os.Getenv("REDIS_URL"); url != "" {
		m, err := catalog.NewRedisMirror(url)
		if err != nil {
			// the durable mirror is an optimization; run without it
			log.Printf("redis mirror unavailable: %v", err)
		} else {
			mirror = m
		}
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient: clients.DynamoDB,
		OrdersTable:    os.Getenv("ORDERS_TABLE_NAME"),
		Catalog:        catalog.NewCache(source, mirror, catalog.DefaultTTL),
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		// the adapter handles proxying; use adapter.ProxyWithContext for proper context propagation
		return adapter.ProxyWithContext(ctx, req)
	})
}
