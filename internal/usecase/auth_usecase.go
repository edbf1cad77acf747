package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen     = 6
	maxProfileFieldLen = 200
)

// AuthUseCase регистрирует пользователей и ведёт их сессии.
// Пользователь с адресом суперадминистратора всегда получает роль admin,
// и его роль нельзя изменить или удалить.
type AuthUseCase struct {
	userRepo        UserRepository
	sessionRepo     SessionRepository
	superAdminEmail string
	sessionTTL      time.Duration
	bcryptCost      int
	logger          logger.Logger
}

func NewAuthUC(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	superAdminEmail string,
	sessionTTL time.Duration,
	bcryptCost int,
	logger logger.Logger,
) *AuthUseCase {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthUseCase{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		superAdminEmail: strings.ToLower(strings.TrimSpace(superAdminEmail)),
		sessionTTL:      sessionTTL,
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

func (a *AuthUseCase) SignUp(ctx context.Context, req *SignUpReq) (*AuthRes, error) {
	const op = "AuthUseCase.SignUp"

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		return nil, e.Wrap(op, e.ErrInvalidEmail)
	}
	if len(req.Password) < minPasswordLen {
		return nil, e.Wrap(op, e.ErrWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	role := domain.RoleUser
	if a.isSuperAdmin(email) {
		role = domain.RoleAdmin
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(email, strings.TrimSpace(req.FullName), role, hash))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	token, err := a.startSession(ctx, user.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Infof("User signed up. user_id: %s, role: %s", user.ID, user.Role)

	return &AuthRes{Token: token, User: user}, nil
}

func (a *AuthUseCase) SignIn(ctx context.Context, req *SignInReq) (*AuthRes, error) {
	const op = "AuthUseCase.SignIn"

	user, err := a.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	token, err := a.startSession(ctx, user.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &AuthRes{Token: token, User: user}, nil
}

func (a *AuthUseCase) SignOut(ctx context.Context, token string) error {
	const op = "AuthUseCase.SignOut"

	if token == "" {
		return nil
	}

	if err := a.sessionRepo.Delete(ctx, token); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Authenticate возвращает пользователя по токену сессии.
func (a *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	const op = "AuthUseCase.Authenticate"

	if token == "" {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	userID, err := a.sessionRepo.GetUserID(ctx, token)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrUserNotFound) {
			return nil, e.Wrap(op, e.ErrUnauthorized)
		}
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// GetProfile возвращает пользователя вместе с данными доставки.
func (a *AuthUseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	const op = "AuthUseCase.GetProfile"

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// UpdateProfile сохраняет имя и данные доставки. Email и роль не меняются.
func (a *AuthUseCase) UpdateProfile(ctx context.Context, req *UpdateProfileReq) (*domain.User, error) {
	const op = "AuthUseCase.UpdateProfile"

	fullName := strings.TrimSpace(req.FullName)
	profile := domain.Profile{
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Phone:           strings.TrimSpace(req.Phone),
		City:            strings.TrimSpace(req.City),
		PostalCode:      strings.TrimSpace(req.PostalCode),
	}

	for _, v := range []string{fullName, profile.ShippingAddress, profile.Phone, profile.City, profile.PostalCode} {
		if utf8.RuneCountInString(v) > maxProfileFieldLen {
			return nil, e.Wrap(op, e.ErrProfileFieldTooLong)
		}
	}

	user, err := a.userRepo.UpdateProfile(ctx, req.UserID, fullName, profile)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Debugf("Profile updated. user_id: %s", user.ID)

	return user, nil
}

func (a *AuthUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	const op = "AuthUseCase.ListUsers"

	users, err := a.userRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return users, nil
}

func (a *AuthUseCase) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	const op = "AuthUseCase.UpdateUserRole"

	if !role.Valid() {
		return nil, e.Wrap(op, e.ErrInvalidRole)
	}

	if err := a.guardSuperAdmin(ctx, id); err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

func (a *AuthUseCase) DeleteUser(ctx context.Context, id string) error {
	const op = "AuthUseCase.DeleteUser"

	if err := a.guardSuperAdmin(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err := a.userRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (a *AuthUseCase) guardSuperAdmin(ctx context.Context, id string) error {
	user, err := a.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if a.isSuperAdmin(user.Email) {
		return e.ErrForbidden
	}

	return nil
}

func (a *AuthUseCase) startSession(ctx context.Context, userID string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	if err := a.sessionRepo.Create(ctx, token, userID, a.sessionTTL); err != nil {
		return "", err
	}

	return token, nil
}

func (a *AuthUseCase) isSuperAdmin(email string) bool {
	return a.superAdminEmail != "" && normalizeEmail(email) == a.superAdminEmail
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
