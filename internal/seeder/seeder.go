package seeder

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/entity"
	productrepo "github.com/Additional-Code/padoca/internal/repository/product"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db       *bun.DB
	products *productrepo.Repository
	logger   *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, products *productrepo.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, products: products, logger: logger}
}

// Catalog returns the starter products of a neighbourhood bakery.
func Catalog() []entity.Product {
	return []entity.Product{
		{Name: "Pão Francês", Price: decimal.RequireFromString("0.75"), Description: describe("Crusty white roll, baked every morning")},
		{Name: "Pão de Queijo", Price: decimal.RequireFromString("1.50"), Description: describe("Cheese bread made with tapioca flour")},
		{Name: "Bolo de Fubá", Price: decimal.RequireFromString("22.50")},
		{Name: "Sonho", Price: decimal.RequireFromString("4.00"), Description: describe("Fried dough filled with custard")},
		{Name: "Café Coado", Price: decimal.RequireFromString("3.25")},
	}
}

// Products inserts the starter catalog when the products table is empty.
// It returns the number of rows written.
func (s *Seeder) Products(ctx context.Context) (int, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log("products already present; skipping", zap.Int("count", count))
		return 0, nil
	}

	catalog := Catalog()
	if _, err := s.db.NewInsert().Model(&catalog).Exec(ctx); err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	s.log("seeded products", zap.Int("count", len(catalog)))
	return len(catalog), nil
}

// Customers inserts sample customers, skipping emails that already exist.
func (s *Seeder) Customers(ctx context.Context) error {
	samples := []entity.Customer{
		{Name: "Ana", Email: "ana@padoca.dev", Address: "Rua das Flores, 1"},
		{Name: "Bruno", Email: "bruno@padoca.dev", Address: "Av. Paulista, 1000"},
	}

	for _, sample := range samples {
		customer := sample
		if _, err := s.db.NewInsert().Model(&customer).Ignore().Exec(ctx); err != nil {
			return fmt.Errorf("seed customer %s: %w", customer.Email, err)
		}
	}

	s.log("seeded customers", zap.Int("count", len(samples)))
	return nil
}

// Run seeds the catalog and the sample customers.
func (s *Seeder) Run(ctx context.Context) error {
	if _, err := s.Products(ctx); err != nil {
		return err
	}
	return s.Customers(ctx)
}

func (s *Seeder) log(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Info(msg, fields...)
	}
}

func describe(text string) *string {
	return &text
}
