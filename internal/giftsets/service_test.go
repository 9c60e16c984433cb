package giftsets

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

func testService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives per connection; cap the pool at one.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(&models.GiftSet{}))

	svc, err := NewService(ServiceParams{
		Repo:   NewRepo(conn),
		Logger: logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func TestCreateBackfillsImagesAndDefaults(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(context.Background(), CreateGiftSetInput{
		Name:  "Winter Ritual",
		Price: 120,
		Image: "/img/winter.jpg",
	})
	require.NoError(t, err)

	require.Len(t, created.Images, 1)
	assert.Equal(t, "/img/winter.jpg", created.Images[0])
	assert.True(t, created.InStock)
	assert.Equal(t, 5, created.Rating)
	assert.Nil(t, created.OriginalPrice)
}

func TestProductSummariesStoredDenormalized(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(context.Background(), CreateGiftSetInput{
		Name:  "Duo",
		Price: 99,
		Products: []ProductSummaryInput{
			{ID: 1, Name: "Serum", Price: 60, Image: "/img/serum.jpg"},
			{ID: 2, Name: "Cream", Price: 55},
		},
	})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Products, 2)
	assert.Equal(t, "Serum", fetched.Products[0].Name)
	assert.Equal(t, 60.0, fetched.Products[0].Price)
}

func TestOriginalPriceRoundTrips(t *testing.T) {
	svc := testService(t)

	original := 150.0
	created, err := svc.Create(context.Background(), CreateGiftSetInput{
		Name:          "Discounted",
		Price:         120,
		OriginalPrice: &original,
	})
	require.NoError(t, err)

	require.NotNil(t, created.OriginalPrice)
	assert.Equal(t, 150.0, *created.OriginalPrice)
}

func TestPartialUpdateStockOnly(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateGiftSetInput{Name: "Set", Price: 80})
	require.NoError(t, err)

	inStock := false
	updated, err := svc.Update(ctx, created.ID, UpdateGiftSetInput{InStock: &inStock})
	require.NoError(t, err)

	assert.False(t, updated.InStock)
	assert.Equal(t, "Set", updated.Name)
	assert.Equal(t, 80.0, updated.Price)
}

func TestDeleteMissingSetIsNotFound(t *testing.T) {
	svc := testService(t)

	err := svc.Delete(context.Background(), 4242)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
