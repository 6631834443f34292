package repository_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vespa-storefront/internal/db"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type snapshotRepositorySuite struct {
	suite.Suite

	setup func(suite *snapshotRepositorySuite)
	repo  port.SnapshotStore

	pool    *pgxpool.Pool
	closers []func()
}

// entry points to run the same tests against every store
func TestMemorySnapshotRepositorySuite(t *testing.T) {
	suite.Run(t, &snapshotRepositorySuite{setup: setupMemory})
}

func TestSQLiteSnapshotRepositorySuite(t *testing.T) {
	suite.Run(t, &snapshotRepositorySuite{setup: setupSQLite})
}

func TestPostgresSnapshotRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, &snapshotRepositorySuite{setup: setupPostgres})
}

func TestRedisSnapshotRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, &snapshotRepositorySuite{setup: setupRedis})
}

// before all tests in the suite
func (suite *snapshotRepositorySuite) SetupSuite() {
	suite.setup(suite)
}

// after all tests in the suite
func (suite *snapshotRepositorySuite) TearDownSuite() {
	for i := len(suite.closers) - 1; i >= 0; i-- {
		suite.closers[i]()
	}
}

func setupMemory(suite *snapshotRepositorySuite) {
	suite.repo = repository.NewMemory()
}

func setupSQLite(suite *snapshotRepositorySuite) {
	database, err := db.OpenMemory()
	suite.Require().NoError(err)

	suite.repo = repository.NewSQLite(database)
	suite.closers = append(suite.closers, func() { database.Close() })
}

func setupPostgres(suite *snapshotRepositorySuite) {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.closers = append(suite.closers, func() { _ = testcontainers.TerminateContainer(container) })

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)
	suite.closers = append(suite.closers, suite.pool.Close)

	suite.repo = repository.NewSnapshot(suite.pool)
}

func setupRedis(suite *snapshotRepositorySuite) {
	ctx := suite.T().Context()

	container, connStr, err := startRedis(ctx)
	suite.Require().NoError(err)
	suite.closers = append(suite.closers, func() { _ = testcontainers.TerminateContainer(container) })

	opt, err := redis.ParseURL(connStr)
	suite.Require().NoError(err)

	client := redis.NewClient(opt)
	suite.closers = append(suite.closers, func() { _ = client.Close() })

	suite.repo = repository.NewRedis(client, "storefront-test", time.Hour)
}

func (suite *snapshotRepositorySuite) TestSave() {
	tests := []struct {
		name      string
		ownerID   string
		key       string
		payload   []byte
		wantError string
	}{
		{
			name:    "save cart snapshot: ok",
			ownerID: gofakeit.UUID(),
			key:     port.CartKey,
			payload: randomPayload(),
		},
		{
			name:    "save empty list: ok",
			ownerID: gofakeit.UUID(),
			key:     port.WishlistKey,
			payload: []byte(`[]`),
		},
		{
			name:      "save with empty owner ID: error",
			ownerID:   "",
			key:       port.CartKey,
			payload:   []byte(`[]`),
			wantError: "ownerID is empty",
		},
		{
			name:      "save with empty key: error",
			ownerID:   gofakeit.UUID(),
			key:       "",
			payload:   []byte(`[]`),
			wantError: "key is empty",
		},
		{
			name:      "save invalid JSON: error",
			ownerID:   gofakeit.UUID(),
			key:       port.CartKey,
			payload:   []byte(`[{"slug":`),
			wantError: "payload is not valid JSON",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.Save(ctx, tt.ownerID, tt.key, tt.payload)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			// Verify the snapshot was stored
			payload, found, err := suite.repo.Load(ctx, tt.ownerID, tt.key)
			require.NoError(t, err)
			require.True(t, found)
			assert.JSONEq(t, string(tt.payload), string(payload))
		})
	}
}

func (suite *snapshotRepositorySuite) TestLoad() {
	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()

	_, found, err := suite.repo.Load(ctx, ownerID, port.CartKey)
	require.NoError(t, err)
	assert.False(t, found)

	first, second := randomPayload(), randomPayload()
	require.NoError(t, suite.repo.Save(ctx, ownerID, port.CartKey, first))
	require.NoError(t, suite.repo.Save(ctx, ownerID, port.CartKey, second))

	payload, found, err := suite.repo.Load(ctx, ownerID, port.CartKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, string(second), string(payload))

	// keys are independent
	_, found, err = suite.repo.Load(ctx, ownerID, port.WishlistKey)
	require.NoError(t, err)
	assert.False(t, found)

	// owners are independent
	_, found, err = suite.repo.Load(ctx, gofakeit.UUID(), port.CartKey)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = suite.repo.Load(ctx, "", port.CartKey)
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *snapshotRepositorySuite) TestDelete() {
	tests := []struct {
		name        string
		ownerID     string
		setup       bool
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing snapshot: ok",
			ownerID:     gofakeit.UUID(),
			setup:       true,
			wantDeleted: true,
		},
		{
			name:        "delete missing snapshot: not found",
			ownerID:     gofakeit.UUID(),
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.repo.Save(ctx, tt.ownerID, port.WishlistKey, randomPayload()))
			}

			deleted, err := suite.repo.Delete(ctx, tt.ownerID, port.WishlistKey)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)

			_, found, err := suite.repo.Load(ctx, tt.ownerID, port.WishlistKey)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func (suite *snapshotRepositorySuite) TestSaveWithTxRollback() {
	if suite.pool == nil {
		suite.T().Skip("transactions are only supported by the postgres store")
	}

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewSnapshotWithTx(tx)
	require.NoError(t, txRepo.Save(ctx, ownerID, port.CartKey, randomPayload()))

	_, found, err := txRepo.Load(ctx, ownerID, port.CartKey)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, tx.Rollback(ctx))

	_, found, err = suite.repo.Load(ctx, ownerID, port.CartKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func randomPayload() []byte {
	items := []map[string]any{{
		"slug":     gofakeit.UUID(),
		"name":     gofakeit.ProductName(),
		"price":    "16 900 TND",
		"quantity": gofakeit.Number(1, 5),
	}}

	payload, err := json.Marshal(items)
	if err != nil {
		panic(err)
	}
	return payload
}
