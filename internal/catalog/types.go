package catalog

// Product is one purchasable catalog entry. Records are read-only from the
// pipeline's perspective; the products table is seeded out of band.
type Product struct {
	ID          string   `json:"id" dynamodbav:"id"` // PK
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description" dynamodbav:"description"`
	Price       float64  `json:"price" dynamodbav:"price"`
	ImageURLs   []string `json:"imageUrls" dynamodbav:"imageUrls"`
	Category    string   `json:"category" dynamodbav:"category"`
	Stock       int      `json:"stock" dynamodbav:"stock"`
	Colors      []string `json:"colors,omitempty" dynamodbav:"colors,omitempty"`
}
