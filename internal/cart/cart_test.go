package cart_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/vespa-storefront/internal/cart"
	"github.com/nikolayk812/vespa-storefront/internal/catalog"
	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/repository"
	"github.com/nikolayk812/vespa-storefront/internal/state"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type cartSuite struct {
	suite.Suite

	store   port.SnapshotStore
	ownerID string
	cart    *cart.Cart

	green domain.Product
	white domain.Product
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(cartSuite))
}

func (suite *cartSuite) SetupSuite() {
	products := catalog.Default().Products()
	suite.green, suite.white = products[0], products[1]
}

// before each test
func (suite *cartSuite) SetupTest() {
	suite.store = repository.NewMemory()
	suite.ownerID = gofakeit.UUID()

	log, _ := test.NewNullLogger()
	suite.cart = cart.New(suite.store, suite.ownerID, log)
	suite.Require().NoError(suite.cart.Load(suite.T().Context()))
}

func (suite *cartSuite) TestEmptyCart() {
	t := suite.T()

	assert.Empty(t, suite.cart.Items())
	assert.Equal(t, 0, suite.cart.ItemCount())
	assert.Equal(t, "0 TND", suite.cart.FormattedTotal())
}

func (suite *cartSuite) TestAddItem() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.AddItem(ctx, suite.white))
	require.NoError(t, suite.cart.AddItem(ctx, suite.green))

	want := []itemSummary{
		{Slug: suite.green.Slug, Quantity: 2},
		{Slug: suite.white.Slug, Quantity: 1},
	}
	assert.Empty(t, cmp.Diff(want, summarize(suite.cart.Items())))

	assert.Equal(t, 3, suite.cart.ItemCount())
	assert.Equal(t, "49 000 TND", suite.cart.FormattedTotal())
}

func (suite *cartSuite) TestAddItemKeepsSelectedColor() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.SetSelectedColor(ctx, suite.green.Slug, "#3d6c4a"))
	require.NoError(t, suite.cart.AddItem(ctx, suite.green))

	items := suite.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "#3d6c4a", items[0].SelectedColor)
}

func (suite *cartSuite) TestAddItemWithColor() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItemWithColor(ctx, suite.green, "#3d7c4a"))
	require.NoError(t, suite.cart.AddItemWithColor(ctx, suite.green, "#000000"))
	require.NoError(t, suite.cart.AddItemWithColor(ctx, suite.white, ""))

	items := suite.cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "#3d7c4a", items[0].SelectedColor)
	assert.Empty(t, items[1].SelectedColor)

	reloaded := cart.New(suite.store, suite.ownerID, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "#3d7c4a", reloaded.Items()[0].SelectedColor)
}

func (suite *cartSuite) TestSubtract() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	ordered := suite.cart.Items()

	// added after the snapshot was taken
	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.AddItem(ctx, suite.white))

	require.NoError(t, suite.cart.Subtract(ctx, ordered))

	want := []itemSummary{
		{Slug: suite.green.Slug, Quantity: 1},
		{Slug: suite.white.Slug, Quantity: 1},
	}
	assert.Empty(t, cmp.Diff(want, summarize(suite.cart.Items())))

	require.NoError(t, suite.cart.Subtract(ctx, suite.cart.Items()))
	assert.Empty(t, suite.cart.Items())
}

func (suite *cartSuite) TestRemoveItem() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.white))
	before := suite.cart.Items()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.AddItem(ctx, suite.green))

	// removes the whole line, not one unit
	require.NoError(t, suite.cart.RemoveItem(ctx, suite.green.Slug))
	assert.Empty(t, cmp.Diff(summarize(before), summarize(suite.cart.Items())))

	// absent slug is a no-op
	require.NoError(t, suite.cart.RemoveItem(ctx, "vespa-unknown"))
	assert.Equal(t, 1, suite.cart.ItemCount())
}

func (suite *cartSuite) TestUpdateQuantity() {
	tests := []struct {
		name      string
		slug      string
		quantity  int
		wantItems []itemSummary
	}{
		{
			name:     "set exact quantity",
			slug:     "vespa-sprint-s-125-green-jungle",
			quantity: 5,
			wantItems: []itemSummary{
				{Slug: "vespa-sprint-s-125-green-jungle", Quantity: 5},
				{Slug: "vespa-primavera-125-bianco", Quantity: 1},
			},
		},
		{
			name:     "zero removes",
			slug:     "vespa-sprint-s-125-green-jungle",
			quantity: 0,
			wantItems: []itemSummary{
				{Slug: "vespa-primavera-125-bianco", Quantity: 1},
			},
		},
		{
			name:     "negative removes",
			slug:     "vespa-primavera-125-bianco",
			quantity: -3,
			wantItems: []itemSummary{
				{Slug: "vespa-sprint-s-125-green-jungle", Quantity: 2},
			},
		},
		{
			name:     "unknown slug is a no-op",
			slug:     "vespa-unknown",
			quantity: 4,
			wantItems: []itemSummary{
				{Slug: "vespa-sprint-s-125-green-jungle", Quantity: 2},
				{Slug: "vespa-primavera-125-bianco", Quantity: 1},
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			t := suite.T()
			ctx := t.Context()

			require.NoError(t, suite.cart.AddItem(ctx, suite.green))
			require.NoError(t, suite.cart.AddItem(ctx, suite.green))
			require.NoError(t, suite.cart.AddItem(ctx, suite.white))

			require.NoError(t, suite.cart.UpdateQuantity(ctx, tt.slug, tt.quantity))
			assert.Empty(t, cmp.Diff(tt.wantItems, summarize(suite.cart.Items())))
		})
	}
}

func (suite *cartSuite) TestUpdateQuantityZeroEqualsRemove() {
	t := suite.T()
	ctx := t.Context()

	other := cart.New(repository.NewMemory(), suite.ownerID, nil)
	require.NoError(t, other.Load(ctx))

	for _, c := range []*cart.Cart{suite.cart, other} {
		require.NoError(t, c.AddItem(ctx, suite.green))
		require.NoError(t, c.AddItem(ctx, suite.white))
	}

	require.NoError(t, suite.cart.UpdateQuantity(ctx, suite.green.Slug, 0))
	require.NoError(t, other.RemoveItem(ctx, suite.green.Slug))

	assert.Empty(t, cmp.Diff(summarize(other.Items()), summarize(suite.cart.Items())))
}

func (suite *cartSuite) TestClear() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.Clear(ctx))

	assert.Empty(t, suite.cart.Items())
	assert.Equal(t, "0 TND", suite.cart.FormattedTotal())

	payload, found, err := suite.store.Load(ctx, suite.ownerID, port.CartKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[]`, string(payload))
}

func (suite *cartSuite) TestPersistence() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))
	require.NoError(t, suite.cart.UpdateQuantity(ctx, suite.green.Slug, 3))
	require.NoError(t, suite.cart.AddItem(ctx, suite.white))

	reloaded := cart.New(suite.store, suite.ownerID, nil)
	require.NoError(t, reloaded.Load(ctx))

	assert.Empty(t, cmp.Diff(summarize(suite.cart.Items()), summarize(reloaded.Items())))
	assert.Equal(t, "65 900 TND", reloaded.FormattedTotal())

	snapshot := reloaded.Snapshot()
	assert.Equal(t, suite.ownerID, snapshot.OwnerID)
	assert.Len(t, snapshot.Items, 2)
}

func (suite *cartSuite) TestMutationBeforeLoad() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.cart.AddItem(ctx, suite.green))

	fresh := cart.New(suite.store, suite.ownerID, nil)
	assert.Equal(t, state.Uninitialized, fresh.Phase())

	err := fresh.Clear(ctx)
	require.ErrorIs(t, err, state.ErrNotReady)

	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, state.Ready, fresh.Phase())
	assert.Equal(t, 1, fresh.ItemCount())
}

func (suite *cartSuite) TestCorruptSnapshots() {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "malformed price", payload: `[{"slug":"a","price":"seize mille","quantity":1}]`},
		{name: "zero quantity", payload: `[{"slug":"a","price":"100 TND","quantity":0}]`},
		{name: "duplicated slug", payload: `[{"slug":"a","price":"100 TND","quantity":1},{"slug":"a","price":"100 TND","quantity":2}]`},
		{name: "not a list", payload: `{"slug":"a"}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			ownerID := gofakeit.UUID()

			require.NoError(t, suite.store.Save(ctx, ownerID, port.CartKey, []byte(tt.payload)))

			log, hook := test.NewNullLogger()
			c := cart.New(suite.store, ownerID, log)
			require.NoError(t, c.Load(ctx))

			assert.Empty(t, c.Items())
			assert.Equal(t, "0 TND", c.FormattedTotal())
			assert.NotEmpty(t, hook.AllEntries())
		})
	}
}

type itemSummary struct {
	Slug     string
	Quantity int
}

func summarize(items []domain.CartItem) []itemSummary {
	var result []itemSummary
	for _, item := range items {
		result = append(result, itemSummary{Slug: item.Slug, Quantity: item.Quantity})
	}
	return result
}
