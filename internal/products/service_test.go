package products

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/rs/zerolog"
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

	require.NoError(t, conn.AutoMigrate(&models.Product{}))

	svc, err := NewService(ServiceParams{
		Repo:   NewRepo(conn),
		Logger: logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	svc := testService(t)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCreateBackfillsImages(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(context.Background(), CreateProductInput{
		Name:     "Radiance Serum",
		Category: "serums",
		Price:    89.5,
		Image:    "/img/serum.jpg",
	})
	require.NoError(t, err)

	require.Len(t, created.Images, 1)
	assert.Equal(t, "/img/serum.jpg", created.Images[0])
	assert.Equal(t, created.Image, created.Images[0])
	assert.Equal(t, 89.5, created.Price)
	assert.Equal(t, 5, created.Rating)
}

func TestGetBackfillsImages(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(context.Background(), CreateProductInput{
		Name:     "Night Cream",
		Category: "moisturizers",
		Price:    64,
		Image:    "/img/cream.jpg",
	})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, fetched.Images)
	assert.Equal(t, fetched.Image, fetched.Images[0])
}

func TestExplicitImagesPreserved(t *testing.T) {
	svc := testService(t)

	created, err := svc.Create(context.Background(), CreateProductInput{
		Name:     "Cleansing Oil",
		Category: "cleansers",
		Price:    45,
		Image:    "/img/oil-1.jpg",
		Images:   []string{"/img/oil-1.jpg", "/img/oil-2.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/img/oil-1.jpg", "/img/oil-2.jpg"}, created.Images)
}

func TestPartialUpdateOnlyChangesProvidedFields(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name:     "Eye Cream",
		Category: "moisturizers",
		Price:    72,
		Image:    "/img/eye.jpg",
	})
	require.NoError(t, err)

	newPrice := 42.0
	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 42.0, updated.Price)
	assert.Equal(t, "Eye Cream", updated.Name)
	assert.Equal(t, "moisturizers", updated.Category)
	assert.Equal(t, created.Images, updated.Images)
}

func TestUpdateMissingProductIsNotFound(t *testing.T) {
	svc := testService(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 9999, UpdateProductInput{Name: &name})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteMissingProductIsNotFound(t *testing.T) {
	svc := testService(t)

	err := svc.Delete(context.Background(), 9999)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateProductInput{Name: "First", Category: "serums", Price: 10})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateProductInput{Name: "Second", Category: "serums", Price: 20})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}
