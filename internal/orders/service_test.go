package orders

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumierebeauty/lumiere-backend/internal/customers"
	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d+-[A-Z0-9]{9}$`)

func testService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives per connection; cap the pool at one.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.Customer{}))

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	customersSvc, err := customers.NewService(customers.ServiceParams{
		Repo:   customers.NewRepo(conn),
		Logger: logg,
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:      NewRepo(conn),
		Customers: customersSvc,
		Logger:    logg,
	})
	require.NoError(t, err)
	return svc, conn
}

func sampleInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []OrderItemInput{
			{ID: 1, Name: "Radiance Serum", Price: 89.5, Quantity: 2, Image: "/img/serum.jpg"},
		},
		Shipping: map[string]any{"street": "1 Rue de la Paix", "city": "Paris"},
		Payment:  map[string]any{"method": "card", "last4": "4242"},
		Total:    179,
	}
}

func TestCreateGeneratesOrderNumber(t *testing.T) {
	svc, _ := testService(t)

	order, err := svc.Create(context.Background(), pkgAuth.Principal{}, sampleInput())
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
}

func TestNewOrderNumberFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		number, err := NewOrderNumber(time.Now())
		require.NoError(t, err)
		assert.Regexp(t, orderNumberPattern, number)
	}
}

func TestTotalStoredVerbatim(t *testing.T) {
	svc, _ := testService(t)

	// Items sum to 179 but the submitted total is accepted as-is.
	input := sampleInput()
	input.Total = 1.5

	order, err := svc.Create(context.Background(), pkgAuth.Principal{}, input)
	require.NoError(t, err)
	assert.Equal(t, 1.5, order.Total)
}

func TestGuestCheckoutCreatesCustomer(t *testing.T) {
	svc, conn := testService(t)

	input := sampleInput()
	input.Customer = &CustomerInfoInput{Name: "Guest Shopper", Email: "guest@example.com"}

	order, err := svc.Create(context.Background(), pkgAuth.Principal{}, input)
	require.NoError(t, err)
	require.NotNil(t, order.CustomerID)
	assert.Nil(t, order.UserID)

	var customer models.Customer
	require.NoError(t, conn.First(&customer, "id = ?", *order.CustomerID).Error)
	assert.Equal(t, "guest@example.com", customer.Email)
}

func TestGuestCheckoutReusesExistingCustomer(t *testing.T) {
	svc, conn := testService(t)
	ctx := context.Background()

	input := sampleInput()
	input.Customer = &CustomerInfoInput{Name: "Guest Shopper", Email: "guest@example.com"}

	first, err := svc.Create(ctx, pkgAuth.Principal{}, input)
	require.NoError(t, err)
	second, err := svc.Create(ctx, pkgAuth.Principal{}, input)
	require.NoError(t, err)

	require.NotNil(t, first.CustomerID)
	require.NotNil(t, second.CustomerID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID)

	var count int64
	require.NoError(t, conn.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthenticatedCheckoutLinksUser(t *testing.T) {
	svc, _ := testService(t)

	order, err := svc.Create(context.Background(), pkgAuth.Principal{
		Kind:   pkgAuth.PrincipalDatabaseUser,
		UserID: 7,
		Role:   enums.UserRoleUser,
	}, sampleInput())
	require.NoError(t, err)

	require.NotNil(t, order.UserID)
	assert.Equal(t, uint(7), *order.UserID)
	assert.Nil(t, order.CustomerID)
}

func TestUpdateStatusLeavesNotesUntouched(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	notes := "gift wrap"
	input := sampleInput()
	input.Notes = &notes

	order, err := svc.Create(ctx, pkgAuth.Principal{}, input)
	require.NoError(t, err)

	status := "Shipped"
	updated, err := svc.Update(ctx, order.ID, UpdateOrderInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusShipped, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "gift wrap", *updated.Notes)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, pkgAuth.Principal{}, sampleInput())
	require.NoError(t, err)

	status := "Teleported"
	_, err = svc.Update(ctx, order.ID, UpdateOrderInput{Status: &status})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestStatusTransitionsUnconstrained(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, pkgAuth.Principal{}, sampleInput())
	require.NoError(t, err)

	for _, status := range []string{"Completed", "Pending", "Cancelled", "Processing"} {
		updated, err := svc.Update(ctx, order.ID, UpdateOrderInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, enums.OrderStatus(status), updated.Status)
	}
}

func TestDeleteMissingOrderIsNotFound(t *testing.T) {
	svc, _ := testService(t)

	err := svc.Delete(context.Background(), 9999)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListByUserFiltersOrders(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	mine := pkgAuth.Principal{Kind: pkgAuth.PrincipalDatabaseUser, UserID: 1, Role: enums.UserRoleUser}
	theirs := pkgAuth.Principal{Kind: pkgAuth.PrincipalDatabaseUser, UserID: 2, Role: enums.UserRoleUser}

	_, err := svc.Create(ctx, mine, sampleInput())
	require.NoError(t, err)
	_, err = svc.Create(ctx, theirs, sampleInput())
	require.NoError(t, err)

	rows, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, uint(1), *rows[0].UserID)
}

func TestItemsStoredAsSnapshots(t *testing.T) {
	svc, _ := testService(t)

	order, err := svc.Create(context.Background(), pkgAuth.Principal{}, sampleInput())
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Radiance Serum", fetched.Items[0].Name)
	assert.Equal(t, 89.5, fetched.Items[0].Price)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}
