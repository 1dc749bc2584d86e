package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/create-and-design/storefront/internal/aws"
)

// Source is the remote product catalog behind the cache.
type Source interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// TableSource reads the full product catalog from the DynamoDB products
// table. The catalog is small enough that a single Scan page covers it.
type TableSource struct {
	client    aws.DynamoDBAPI
	tableName string
	timeout   time.Duration
}

// NewTableSource creates a TableSource for the given products table.
func NewTableSource(client aws.DynamoDBAPI, tableName string) *TableSource {
	return &TableSource{
		client:    client,
		tableName: tableName,
		timeout:   15 * time.Second,
	}
}

// FetchProducts scans the products table with a bounded timeout.
func (s *TableSource) FetchProducts(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName: &s.tableName,
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	products := make([]Product, 0, len(out.Items))
	for _, item := range out.Items {
		var p Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}
