package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/lumierebeauty/lumiere-backend/internal/users"
	pkgAuth "github.com/lumierebeauty/lumiere-backend/pkg/auth"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/db/models"
	dbtypes "github.com/lumierebeauty/lumiere-backend/pkg/db/types"
	"github.com/lumierebeauty/lumiere-backend/pkg/enums"
	pkgerrors "github.com/lumierebeauty/lumiere-backend/pkg/errors"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/lumierebeauty/lumiere-backend/pkg/security"
)

// OperatorUserID is the reserved id carried by the config-backed operator
// principal. No row with this id ever exists.
const OperatorUserID uint = 0

// Service exposes registration, login and self-service account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	Me(ctx context.Context, actor pkgAuth.Principal) (*users.UserResponse, error)
	UpdateProfile(ctx context.Context, actor pkgAuth.Principal, input UpdateProfileInput) (*users.UserResponse, error)
	ChangePassword(ctx context.Context, actor pkgAuth.Principal, input ChangePasswordInput) error
	PromoteAdmin(ctx context.Context, input PromoteAdminInput) (*users.UserResponse, error)
}

// ServiceParams wires the service dependencies.
type ServiceParams struct {
	Users    users.Repo
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Admin    config.AdminConfig
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	users    users.Repo
	jwt      config.JWTConfig
	password config.PasswordConfig
	admin    config.AdminConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService validates dependencies and builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("auth: users repo is required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}
	if params.Admin.Email == "" || params.Admin.Password == "" {
		return nil, fmt.Errorf("auth: operator credentials are required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("auth: logger is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		users:    params.Users,
		jwt:      params.JWT,
		password: params.Password,
		admin:    params.Admin,
		logg:     params.Logger,
		now:      params.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         enums.UserRoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, users.EmailUniqueIndex) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	token, err := s.mintUserToken(user)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID), "auth.registered")

	return &AuthResponse{Token: token, User: users.ToResponse(user)}, nil
}

// Login checks the config-backed operator credentials first, then falls
// back to a database lookup with bcrypt verification.
func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	if s.isOperator(email, input.Password) {
		token, err := pkgAuth.MintAccessToken(s.jwt, s.now(), pkgAuth.AccessTokenPayload{
			UserID: OperatorUserID,
			Role:   enums.UserRoleAdmin,
			Email:  normalizeEmail(s.admin.Email),
			System: true,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
		}

		s.logg.Info(s.logg.WithField(ctx, "user_id", OperatorUserID), "auth.operator_login")

		return &AuthResponse{Token: token, User: s.operatorProfile()}, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password")
	}

	token, err := s.mintUserToken(user)
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID), "auth.login")

	return &AuthResponse{Token: token, User: users.ToResponse(user)}, nil
}

func (s *service) Me(ctx context.Context, actor pkgAuth.Principal) (*users.UserResponse, error) {
	if actor.IsSystem() {
		profile := s.operatorProfile()
		return &profile, nil
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching user")
	}

	resp := users.ToResponse(user)
	return &resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, actor pkgAuth.Principal, input UpdateProfileInput) (*users.UserResponse, error) {
	if actor.IsSystem() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Operator profile cannot be modified")
	}

	changes := map[string]any{}
	if input.Name != nil {
		changes["name"] = *input.Name
	}
	if input.Phone != nil {
		changes["phone"] = *input.Phone
	}
	if input.Address != nil {
		changes["address"] = dbtypes.JSONMap(*input.Address)
	}

	if len(changes) == 0 {
		return s.Me(ctx, actor)
	}

	user, err := s.users.Update(ctx, actor.UserID, changes)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating profile")
	}

	resp := users.ToResponse(user)
	return &resp, nil
}

func (s *service) ChangePassword(ctx context.Context, actor pkgAuth.Principal, input ChangePasswordInput) error {
	if actor.IsSystem() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Operator password is configuration-managed")
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching user")
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "Current password is incorrect")
	}

	hash, err := security.HashPassword(input.NewPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	if _, err := s.users.Update(ctx, user.ID, map[string]any{"password_hash": hash}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating password")
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID), "auth.password_changed")
	return nil
}

// PromoteAdmin elevates an existing account. The operator identity cannot
// be targeted: it has no row, and its email is rejected outright.
func (s *service) PromoteAdmin(ctx context.Context, input PromoteAdminInput) (*users.UserResponse, error) {
	email := normalizeEmail(input.Email)

	if email == normalizeEmail(s.admin.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator account cannot be modified")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user")
	}

	updated, err := s.users.Update(ctx, user.ID, map[string]any{"role": enums.UserRoleAdmin})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promoting user")
	}

	s.logg.Info(s.logg.WithField(ctx, "user_id", user.ID), "auth.promoted_admin")

	resp := users.ToResponse(updated)
	return &resp, nil
}

func (s *service) mintUserToken(user *models.User) (string, error) {
	token, err := pkgAuth.MintAccessToken(s.jwt, s.now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	return token, nil
}

func (s *service) isOperator(email, password string) bool {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(normalizeEmail(s.admin.Email)))
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password))
	return emailMatch&passwordMatch == 1
}

func (s *service) operatorProfile() users.UserResponse {
	return users.UserResponse{
		ID:    OperatorUserID,
		Name:  s.admin.Name,
		Email: normalizeEmail(s.admin.Email),
		Role:  enums.UserRoleAdmin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
