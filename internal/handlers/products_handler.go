package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/create-and-design/storefront/internal/catalog"
)

// RegisterProductsRoutes registers the catalog read route. Responses are
// edge-cacheable for a minute; the catalog cache behind it holds snapshots
// far longer.
func RegisterProductsRoutes(r *gin.Engine, cfg HandlerConfig) {
	r.GET("/products", func(c *gin.Context) {
		products, err := cfg.Catalog.GetProducts(c.Request.Context())
		if err != nil {
			if errors.Is(err, catalog.ErrSourceUnavailable) {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "PRODUCTS_TABLE_NAME is not configured"})
				return
			}
			log.Printf("[products] catalog load failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "could not load catalog"})
			return
		}

		c.Header("Cache-Control", "public, max-age=60, stale-while-revalidate=300")
		c.JSON(http.StatusOK, products)
	})
}
