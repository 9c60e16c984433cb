package auth

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

	"github.com/lumierebeauty/lumiere-backend/internal/users"
	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
)

var testAdmin = config.AdminConfig{
	Email:    "ops@lumierebeauty.com",
	Password: "operator-secret",
	Name:     "Store Operator",
}

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

	require.NoError(t, conn.AutoMigrate(&models.User{}))

	svc, err := NewService(ServiceParams{
		Users: users.NewRepo(conn),
		JWT: config.JWTConfig{
			Secret:            "auth-test-secret",
			Issuer:            "lumiere",
			ExpirationMinutes: 1440,
		},
		Password: config.PasswordConfig{BcryptCost: 4},
		Admin:    testAdmin,
		Logger:   logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc, conn
}

func TestRegisterIssuesTokenAndUserRole(t *testing.T) {
	svc, _ := testService(t)

	resp, err := svc.Register(context.Background(), RegisterInput{
		Name:     "A",
		Email:    "a@b.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, enums.UserRoleUser, resp.User.Role)
	assert.Equal(t, "a@b.com", resp.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	input := RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDuplicateEmail, typed.Code())
}

func TestRegisterNormalizesEmailForUniqueness(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "Shopper@Example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "  shopper@example.com ", Password: "secret123"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDuplicateEmail, typed.Code())
}

func TestOperatorLoginWithoutDatabaseRow(t *testing.T) {
	svc, conn := testService(t)

	resp, err := svc.Login(context.Background(), LoginInput{
		Email:    testAdmin.Email,
		Password: testAdmin.Password,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(0), resp.User.ID)
	assert.Equal(t, enums.UserRoleAdmin, resp.User.Role)

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "whatever"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestMeReturnsOperatorProfileForSystemPrincipal(t *testing.T) {
	svc, _ := testService(t)

	profile, err := svc.Me(context.Background(), pkgAuth.Principal{
		Kind:   pkgAuth.PrincipalSystemAdmin,
		UserID: 0,
		Role:   enums.UserRoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(0), profile.ID)
	assert.Equal(t, testAdmin.Name, profile.Name)
	assert.Equal(t, enums.UserRoleAdmin, profile.Role)
}

func TestSystemPrincipalCannotUpdateProfile(t *testing.T) {
	svc, _ := testService(t)

	name := "New Name"
	_, err := svc.UpdateProfile(context.Background(), pkgAuth.Principal{
		Kind: pkgAuth.PrincipalSystemAdmin,
		Role: enums.UserRoleAdmin,
	}, UpdateProfileInput{Name: &name})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestSystemPrincipalCannotChangePassword(t *testing.T) {
	svc, _ := testService(t)

	err := svc.ChangePassword(context.Background(), pkgAuth.Principal{
		Kind: pkgAuth.PrincipalSystemAdmin,
		Role: enums.UserRoleAdmin,
	}, ChangePasswordInput{CurrentPassword: "x", NewPassword: "y123456"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	actor := pkgAuth.Principal{Kind: pkgAuth.PrincipalDatabaseUser, UserID: resp.User.ID, Role: enums.UserRoleUser}

	err = svc.ChangePassword(ctx, actor, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newsecret"})
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, actor, ChangePasswordInput{CurrentPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestPromoteAdmin(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.com", Password: "secret123"})
	require.NoError(t, err)

	promoted, err := svc.PromoteAdmin(ctx, PromoteAdminInput{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, promoted.Role)
}

func TestPromoteAdminRejectsOperatorEmail(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.PromoteAdmin(context.Background(), PromoteAdminInput{Email: testAdmin.Email})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestPromoteAdminMissingUser(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.PromoteAdmin(context.Background(), PromoteAdminInput{Email: "nobody@b.com"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
