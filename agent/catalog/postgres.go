package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

const searchLimit = 10

type orderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderNumber     string   `bun:"order_number,pk"`
	Email           string   `bun:"email"`
	CustomerName    string   `bun:"customer_name"`
	Status          string   `bun:"status"`
	TrackingNumber  string   `bun:"tracking_number"`
	ProductsOrdered []string `bun:"products_ordered,array"`
}

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	SKU         string   `bun:"sku,pk"`
	ProductName string   `bun:"product_name"`
	Description string   `bun:"description"`
	Tags        []string `bun:"tags,array"`
	Inventory   int      `bun:"inventory"`
}

// Postgres serves orders and products from the store database.
type Postgres struct {
	db *bun.DB
}

var _ contractx.Catalog = (*Postgres)(nil)

func NewPostgres(dsn string) *Postgres {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &Postgres{db: bun.NewDB(sqldb, pgdialect.New())}
}

func (c *Postgres) Close() error {
	return c.db.Close()
}

func (c *Postgres) GetOrder(ctx context.Context, orderNumber, email string) (*statex.Order, error) {
	var row orderRow
	err := c.db.NewSelect().
		Model(&row).
		Where("o.order_number = ?", strings.ToUpper(strings.TrimSpace(orderNumber))).
		Where("lower(o.email) = lower(?)", strings.TrimSpace(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", contractx.ErrOrderNotFound, orderNumber)
		}
		return nil, fmt.Errorf("get order %s: %w", orderNumber, err)
	}
	return &statex.Order{
		OrderNumber:     row.OrderNumber,
		Email:           row.Email,
		CustomerName:    row.CustomerName,
		Status:          row.Status,
		TrackingNumber:  row.TrackingNumber,
		ProductsOrdered: row.ProductsOrdered,
	}, nil
}

func (c *Postgres) GetProduct(ctx context.Context, sku string) (*statex.Product, error) {
	var row productRow
	err := c.db.NewSelect().
		Model(&row).
		Where("p.sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", contractx.ErrProductNotFound, sku)
		}
		return nil, fmt.Errorf("get product %s: %w", sku, err)
	}
	p := toProduct(row)
	return &p, nil
}

func (c *Postgres) SearchProducts(ctx context.Context, query string) ([]statex.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}

	var rows []productRow
	err := c.db.NewSelect().
		Model(&rows).
		Where("p.product_name ILIKE ?", "%"+trimmed+"%").
		Order("p.sku ASC").
		Limit(searchLimit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search products %q: %w", trimmed, err)
	}

	out := make([]statex.Product, len(rows))
	for i, row := range rows {
		out[i] = toProduct(row)
	}
	return out, nil
}

func (c *Postgres) UniqueTags(ctx context.Context) ([]string, error) {
	var tags []string
	err := c.db.NewSelect().
		ColumnExpr("DISTINCT unnest(p.tags)").
		Model((*productRow)(nil)).
		Scan(ctx, &tags)
	if err != nil {
		return nil, fmt.Errorf("unique tags: %w", err)
	}
	return tags, nil
}

func toProduct(row productRow) statex.Product {
	return statex.Product{
		SKU:         row.SKU,
		ProductName: row.ProductName,
		Description: row.Description,
		Tags:        row.Tags,
		Inventory:   row.Inventory,
	}
}
