package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/padoca/internal/database/databasetest"
	"github.com/Additional-Code/padoca/internal/entity"
)

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository(databasetest.Open(t))
	ctx := context.Background()

	ana := &entity.Customer{Name: "Ana", Email: "a@x.com", Address: "Rua 1"}
	require.NoError(t, repo.Create(ctx, ana))
	assert.NotZero(t, ana.ID)

	err := repo.Create(ctx, &entity.Customer{Name: "Other", Email: "a@x.com", Address: "Rua 2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ana", customers[0].Name)
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	repo := NewRepository(databasetest.Open(t))
	ctx := context.Background()

	ana := &entity.Customer{Name: "Ana", Email: "a@x.com", Address: "Rua 1"}
	bia := &entity.Customer{Name: "Bia", Email: "b@x.com", Address: "Rua 2"}
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, bia))

	require.NoError(t, repo.Update(ctx, &entity.Customer{ID: ana.ID, Name: "Ana Maria", Email: "am@x.com", Address: "Rua 3"}))

	err := repo.Update(ctx, &entity.Customer{ID: bia.ID, Name: "Bia", Email: "am@x.com", Address: "Rua 2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, repo.Update(ctx, &entity.Customer{ID: 999, Name: "Ghost", Email: "g@x.com", Address: "-"}))

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, entity.Customer{ID: ana.ID, Name: "Ana Maria", Email: "am@x.com", Address: "Rua 3"}, customers[0])
	assert.Equal(t, "b@x.com", customers[1].Email)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	repo := NewRepository(databasetest.Open(t))
	ctx := context.Background()

	ana := &entity.Customer{Name: "Ana", Email: "a@x.com", Address: "Rua 1"}
	require.NoError(t, repo.Create(ctx, ana))

	require.NoError(t, repo.Delete(ctx, 12345))
	require.NoError(t, repo.Delete(ctx, ana.ID))
	require.NoError(t, repo.Delete(ctx, ana.ID))

	customers, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestListAddressesProjectsColumns(t *testing.T) {
	repo := NewRepository(databasetest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Ana", Email: "a@x.com", Address: "Rua 1"}))

	rows, err := repo.ListAddresses(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].Name)
	assert.Equal(t, "Rua 1", rows[0].Address)
	assert.Empty(t, rows[0].Email)
}
