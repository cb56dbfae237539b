package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/database/databasetest"
	"github.com/Additional-Code/padoca/internal/entity"
	productrepo "github.com/Additional-Code/padoca/internal/repository/product"
)

func TestRunIsRepeatable(t *testing.T) {
	conns := databasetest.Open(t)
	s := New(conns, productrepo.NewRepository(conns), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	products, err := conns.Reader.NewSelect().Model((*entity.Product)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Catalog()), products)

	customers, err := conns.Reader.NewSelect().Model((*entity.Customer)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, customers)
}

func TestProductsSkipsExistingCatalog(t *testing.T) {
	conns := databasetest.Open(t)
	repo := productrepo.NewRepository(conns)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Product{Name: "Broa", Price: Catalog()[0].Price}))

	n, err := New(conns, repo, nil).Products(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
