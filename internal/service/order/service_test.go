package order

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/database/databasetest"
	"github.com/Additional-Code/padoca/internal/entity"
	"github.com/Additional-Code/padoca/internal/messaging"
	repo "github.com/Additional-Code/padoca/internal/repository/order"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

type capturingPublisher struct {
	mu       sync.Mutex
	messages []messaging.Message
	err      error
}

func (p *capturingPublisher) Publish(_ context.Context, msg messaging.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *capturingPublisher) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (p *capturingPublisher) Topic() string { return "bakery.events" }

type serviceFixture struct {
	svc       *Service
	conns     *database.Connections
	publisher *capturingPublisher
	customer  entity.Customer
	pao       entity.Product
	bolo      entity.Product
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	conns := databasetest.Open(t)
	publisher := &capturingPublisher{}
	svc, err := NewService(Params{
		Repository: repo.NewRepository(conns),
		Config:     config.Config{Messaging: config.Messaging{Enabled: true}},
		Logger:     zap.NewNop(),
		Publisher:  publisher,
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	f := &serviceFixture{
		svc:       svc,
		conns:     conns,
		publisher: publisher,
		customer:  entity.Customer{Name: "Ana", Email: "a@x.com", Address: "Rua 1"},
		pao:       entity.Product{Name: "Pão", Price: decimal.NewFromInt(5)},
		bolo:      entity.Product{Name: "Bolo", Price: decimal.RequireFromString("22.5")},
	}
	ctx := context.Background()
	for _, model := range []any{&f.customer, &f.pao, &f.bolo} {
		_, err := conns.Writer.NewInsert().Model(model).Exec(ctx)
		require.NoError(t, err)
	}
	return f
}

func TestPlaceAndListForCustomer(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	order, err := f.svc.Place(ctx, f.customer.ID, []entity.OrderItem{
		{ProductID: f.pao.ID, Quantity: 3},
		{ProductID: f.bolo.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)

	orders, err := f.svc.ListForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, "pending", orders[0].Status)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Pão", orders[0].Items[0].ProductName)
	assert.Equal(t, 5.0, orders[0].Items[0].Price)
	assert.Equal(t, 22.5, orders[0].Items[1].Price)

	require.Len(t, f.publisher.messages, 1)
	msg := f.publisher.messages[0]
	assert.Equal(t, EventOrderPlaced, msg.EventType())
	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, order.ID, event.ID)
	assert.Len(t, event.Items, 2)
}

func TestPlaceValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Place(ctx, f.customer.ID, nil)
	assert.True(t, errorbank.Is(err, errorbank.KindBadRequest))

	_, err = f.svc.Place(ctx, 999, []entity.OrderItem{{ProductID: f.pao.ID, Quantity: 1}})
	assert.True(t, errorbank.Is(err, errorbank.KindNotFound))
	assert.Equal(t, "customer not found", errorbank.From(err).Message())

	_, err = f.svc.Place(ctx, f.customer.ID, []entity.OrderItem{{ProductID: 42, Quantity: 1}})
	require.True(t, errorbank.Is(err, errorbank.KindNotFound))
	assert.EqualValues(t, 42, errorbank.From(err).Details()["product_id"])

	assert.Empty(t, f.publisher.messages)
}

func TestPublishFailureDoesNotFailPlacement(t *testing.T) {
	f := newServiceFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.Place(context.Background(), f.customer.ID, []entity.OrderItem{{ProductID: f.pao.ID, Quantity: 1}})
	require.NoError(t, err)
}

func TestListForCustomerWithoutOrders(t *testing.T) {
	f := newServiceFixture(t)

	orders, err := f.svc.ListForCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestPricesAreResolvedLive(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Place(ctx, f.customer.ID, []entity.OrderItem{{ProductID: f.pao.ID, Quantity: 2}})
	require.NoError(t, err)

	f.pao.Price = decimal.RequireFromString("7.25")
	_, err = f.conns.Writer.NewUpdate().Model(&f.pao).Column("price").WherePK().Exec(ctx)
	require.NoError(t, err)

	orders, err := f.svc.ListForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 7.25, orders[0].Items[0].Price)
}

func TestAddItemGetAndDelete(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	order, err := f.svc.Place(ctx, f.customer.ID, []entity.OrderItem{{ProductID: f.pao.ID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, f.svc.AddItem(ctx, order.ID, entity.OrderItem{ProductID: f.bolo.ID, Quantity: 2}))

	err = f.svc.AddItem(ctx, order.ID+100, entity.OrderItem{ProductID: f.bolo.ID, Quantity: 2})
	assert.True(t, errorbank.Is(err, errorbank.KindNotFound))

	got, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	require.NoError(t, f.svc.Delete(ctx, order.ID))
	require.NoError(t, f.svc.Delete(ctx, order.ID))

	_, err = f.svc.Get(ctx, order.ID)
	assert.True(t, errorbank.Is(err, errorbank.KindNotFound))

	orders, err := f.svc.ListForCustomer(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
