package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// AdminAuthService authenticates the single hardcoded admin identity and
// keeps the session (token + user record) in the key-value store.
type AdminAuthService struct {
	kv       kv.Store
	admin    models.AdminUser
	password string
	latency  time.Duration
	logger   *zap.Logger
}

// NewAdminAuthService creates an admin auth service. latency mimics the
// network round-trip the storefront UI expects; tests pass zero.
func NewAdminAuthService(store kv.Store, admin models.AdminUser, password string, latency time.Duration) *AdminAuthService {
	return &AdminAuthService{
		kv:       store,
		admin:    admin,
		password: encodePassword(password),
		latency:  latency,
		logger:   util.GetLogger(),
	}
}

// Login checks credentials against the configured admin identity. Success
// mints a fresh token and stores both session keys; failure changes nothing.
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*models.AdminUser, string, error) {
	time.Sleep(s.latency)

	if !strings.EqualFold(email, s.admin.Email) || !passwordMatches(password, s.password) {
		util.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return nil, "", ErrInvalidCredentials
	}

	token := newToken()
	if err := s.kv.Set(ctx, kv.KeyAdminToken, token); err != nil {
		s.logger.Error("Failed to store admin token", zap.Error(err))
	}
	kv.Save(ctx, s.kv, kv.KeyAdminUser, s.admin)

	util.LoginsTotal.WithLabelValues("admin", "success").Inc()
	s.logger.Info("Admin logged in", zap.String("email", s.admin.Email))

	user := s.admin
	return &user, token, nil
}

// Logout deletes both session keys.
func (s *AdminAuthService) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, kv.KeyAdminToken); err != nil {
		s.logger.Warn("Failed to delete admin token", zap.Error(err))
	}
	if err := s.kv.Delete(ctx, kv.KeyAdminUser); err != nil {
		s.logger.Warn("Failed to delete admin user", zap.Error(err))
	}
}

// Current returns the logged-in admin, or nil. Both the token and a
// parseable user record must be present; a dangling token alone does not
// count as authenticated.
func (s *AdminAuthService) Current(ctx context.Context) *models.AdminUser {
	_, ok, err := s.kv.Get(ctx, kv.KeyAdminToken)
	if err != nil || !ok {
		return nil
	}

	var user models.AdminUser
	if !kv.Load(ctx, s.kv, kv.KeyAdminUser, &user, false) {
		return nil
	}
	return &user
}

// Authenticate resolves a presented bearer token to the admin session.
func (s *AdminAuthService) Authenticate(ctx context.Context, token string) *models.AdminUser {
	stored, ok, err := s.kv.Get(ctx, kv.KeyAdminToken)
	if err != nil || !ok || token == "" || stored != token {
		return nil
	}

	var user models.AdminUser
	if !kv.Load(ctx, s.kv, kv.KeyAdminUser, &user, false) {
		return nil
	}
	return &user
}
