package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/partner"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/domain/trade"
)

type orderFixture struct {
	db       *gorm.DB
	repo     *GormOrderRepository
	buyer    *identity.User
	owner    *identity.User
	shop     *catalog.Shop
	listings []catalog.ProductInfo
	contact  *partner.Contact
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	buyer, err := identity.NewUser("buyer@example.com", "password123", identity.UserTypeBuyer)
	require.NoError(t, err)
	owner, err := identity.NewUser("supplier@example.com", "password123", identity.UserTypeShop)
	require.NoError(t, err)
	users := NewGormUserRepository(db)
	require.NoError(t, users.Create(ctx, buyer))
	require.NoError(t, users.Create(ctx, owner))

	stats, err := NewGormImportRepository(db).ReplaceShopCatalog(ctx, owner.ID, samplePriceList())
	require.NoError(t, err)

	shop, err := NewGormShopRepository(db).FindByID(ctx, stats.ShopID)
	require.NoError(t, err)

	var listings []catalog.ProductInfo
	require.NoError(t, db.Where("shop_id = ?", shop.ID).Order("external_id").Find(&listings).Error)
	require.Len(t, listings, 2)

	contact, err := partner.NewContact(buyer.ID, "Moscow", "Tverskaya 1", "+7 900 000-00-00")
	require.NoError(t, err)
	require.NoError(t, NewGormContactRepository(db).Save(ctx, contact))

	return &orderFixture{
		db:       db,
		repo:     NewGormOrderRepository(db),
		buyer:    buyer,
		owner:    owner,
		shop:     shop,
		listings: listings,
		contact:  contact,
	}
}

func TestGormOrderRepository_GetOrCreateBasket(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	first, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusBasket, first.Status)

	second, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGormOrderRepository_AddItems(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	basket, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
	require.NoError(t, err)

	item1, err := trade.NewOrderItem(basket.ID, f.listings[0].ID, 2)
	require.NoError(t, err)
	item2, err := trade.NewOrderItem(basket.ID, f.listings[1].ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.repo.AddItems(ctx, []trade.OrderItem{*item1, *item2}))

	t.Run("duplicate listing fails the whole batch", func(t *testing.T) {
		dup, err := trade.NewOrderItem(basket.ID, f.listings[0].ID, 5)
		require.NoError(t, err)

		err = f.repo.AddItems(ctx, []trade.OrderItem{*dup})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		loaded, err := f.repo.FindBasket(ctx, f.buyer.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Items, 2)
	})

	t.Run("basket total sums loaded listings", func(t *testing.T) {
		loaded, err := f.repo.FindBasket(ctx, f.buyer.ID)
		require.NoError(t, err)

		// 2 * 110000 + 1 * 65000
		assert.True(t, loaded.TotalSum().Equal(decimal.NewFromInt(285000)),
			"got %s", loaded.TotalSum())
	})
}

func TestGormOrderRepository_UpdateAndDeleteItems(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	basket, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
	require.NoError(t, err)
	item1, err := trade.NewOrderItem(basket.ID, f.listings[0].ID, 2)
	require.NoError(t, err)
	item2, err := trade.NewOrderItem(basket.ID, f.listings[1].ID, 1)
	require.NoError(t, err)
	require.NoError(t, f.repo.AddItems(ctx, []trade.OrderItem{*item1, *item2}))

	t.Run("updates apply independently and count rows", func(t *testing.T) {
		updated, err := f.repo.UpdateItemQuantities(ctx, basket.ID, []trade.ItemQuantityUpdate{
			{ItemID: item1.ID, Quantity: 7},
			{ItemID: uuid.New(), Quantity: 3}, // unknown item, no match
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, updated)

		loaded, err := f.repo.FindBasket(ctx, f.buyer.ID)
		require.NoError(t, err)
		for _, it := range loaded.Items {
			if it.ID == item1.ID {
				assert.Equal(t, 7, it.Quantity)
			}
		}
	})

	t.Run("delete skips ids from other orders", func(t *testing.T) {
		deleted, err := f.repo.DeleteItems(ctx, basket.ID, []uuid.UUID{item2.ID, uuid.New()})
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)

		loaded, err := f.repo.FindBasket(ctx, f.buyer.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Items, 1)
	})
}

func TestGormOrderRepository_PlaceOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	basket, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
	require.NoError(t, err)
	item, err := trade.NewOrderItem(basket.ID, f.listings[0].ID, 1)
	require.NoError(t, err)
	require.NoError(t, f.repo.AddItems(ctx, []trade.OrderItem{*item}))

	placed, err := f.repo.PlaceOrder(ctx, f.buyer.ID, basket.ID, f.contact.ID)
	require.NoError(t, err)
	assert.True(t, placed)

	t.Run("second placement of the same basket is a no-op", func(t *testing.T) {
		placed, err := f.repo.PlaceOrder(ctx, f.buyer.ID, basket.ID, f.contact.ID)
		require.NoError(t, err)
		assert.False(t, placed)
	})

	t.Run("placed order leaves the basket slot free", func(t *testing.T) {
		_, err := f.repo.FindBasket(ctx, f.buyer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		fresh, err := f.repo.GetOrCreateBasket(ctx, f.buyer.ID)
		require.NoError(t, err)
		assert.NotEqual(t, basket.ID, fresh.ID)
	})

	t.Run("placed order is visible to buyer and supplier", func(t *testing.T) {
		mine, err := f.repo.FindPlacedByUser(ctx, f.buyer.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, trade.OrderStatusNew, mine[0].Status)
		require.NotNil(t, mine[0].Contact)
		assert.Equal(t, "Moscow", mine[0].Contact.City)

		theirs, err := f.repo.FindPlacedByShopOwner(ctx, f.owner.ID)
		require.NoError(t, err)
		require.Len(t, theirs, 1)
		assert.Equal(t, basket.ID, theirs[0].ID)
	})

	t.Run("supplier lookup by id is shop-scoped", func(t *testing.T) {
		order, err := f.repo.FindByIDForShopOwner(ctx, f.owner.ID, basket.ID)
		require.NoError(t, err)
		assert.Equal(t, basket.ID, order.ID)
		require.NotEmpty(t, order.Items)
		require.NotNil(t, order.Items[0].ProductInfo)

		_, err = f.repo.FindByIDForShopOwner(ctx, uuid.New(), basket.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.repo.FindByIDForShopOwner(ctx, f.owner.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("guarded status transition", func(t *testing.T) {
		ok, err := f.repo.UpdateStatus(ctx, basket.ID, trade.OrderStatusNew, trade.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.True(t, ok)

		// Repeating the same transition finds no row in the from state
		ok, err = f.repo.UpdateStatus(ctx, basket.ID, trade.OrderStatusNew, trade.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

// newMockOrderRepository wires the repository to a mocked postgres connection
// to pin down the exact conditional-update SQL.
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_PlaceOrderConditionalSQL(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	userID := uuid.New()
	orderID := uuid.New()
	contactID := uuid.New()

	mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+ AND user_id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	placed, err := repo.PlaceOrder(context.Background(), userID, orderID, contactID)
	require.NoError(t, err)
	assert.True(t, placed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
