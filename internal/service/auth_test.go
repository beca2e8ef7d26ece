package service

import (
	"context"
	"testing"

	"storefront/internal/kv"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerAuth() (*CustomerAuthService, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	return NewCustomerAuthService(store, 0), store
}

func registerAna(t *testing.T, auth *CustomerAuthService) (*models.Customer, string) {
	t.Helper()
	customer, token, err := auth.Register(context.Background(), RegisterRequest{
		Name:     "Ana Torres",
		Email:    "ana@example.com",
		Password: "secreto1",
		City:     "Bogotá",
	})
	require.NoError(t, err)
	return customer, token
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newCustomerAuth()
	registerAna(t, auth)

	_, _, err := auth.Register(context.Background(), RegisterRequest{
		Name:     "Otra Ana",
		Email:    "ANA@Example.com",
		Password: "otra",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAutoLogsIn(t *testing.T) {
	auth, _ := newCustomerAuth()
	customer, token := registerAna(t, auth)
	assert.NotEmpty(t, token)

	current := auth.Current(context.Background())
	require.NotNil(t, current)
	assert.Equal(t, customer.ID, current.ID)
}

func TestLoginLogoutLifecycle(t *testing.T) {
	auth, _ := newCustomerAuth()
	ctx := context.Background()
	registered, _ := registerAna(t, auth)
	auth.Logout(ctx)
	require.Nil(t, auth.Current(ctx))

	// case-insensitive email, same password
	customer, token, err := auth.Login(ctx, "Ana@EXAMPLE.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, customer.ID)
	assert.NotEmpty(t, token)

	current := auth.Current(ctx)
	require.NotNil(t, current)
	assert.Equal(t, registered.ID, current.ID)

	auth.Logout(ctx)
	assert.Nil(t, auth.Current(ctx))
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newCustomerAuth()
	registerAna(t, auth)
	auth.Logout(context.Background())

	_, _, err := auth.Login(context.Background(), "ana@example.com", "equivocada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, auth.Current(context.Background()))
}

func TestDanglingTokenIsNotAuthenticated(t *testing.T) {
	auth, store := newCustomerAuth()
	ctx := context.Background()
	registerAna(t, auth)

	// a token without a matching user record does not count
	require.NoError(t, store.Delete(ctx, kv.KeyCustomerUser))
	assert.Nil(t, auth.Current(ctx))
}

func TestAuthenticateRequiresMatchingToken(t *testing.T) {
	auth, _ := newCustomerAuth()
	ctx := context.Background()
	_, token := registerAna(t, auth)

	assert.NotNil(t, auth.Authenticate(ctx, token))
	assert.Nil(t, auth.Authenticate(ctx, "otro-token"))
	assert.Nil(t, auth.Authenticate(ctx, ""))
}

func TestUpdateProfileMergesPatch(t *testing.T) {
	auth, _ := newCustomerAuth()
	ctx := context.Background()
	customer, _ := registerAna(t, auth)

	phone := "+573001234567"
	updated, err := auth.UpdateProfile(ctx, customer.ID, ProfilePatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Ana Torres", updated.Name)
	assert.Equal(t, "Bogotá", updated.City)

	// session record follows the profile
	current := auth.Current(ctx)
	require.NotNil(t, current)
	assert.Equal(t, phone, current.Phone)
}

func TestUpdateProfileUnknownCustomer(t *testing.T) {
	auth, _ := newCustomerAuth()
	_, err := auth.UpdateProfile(context.Background(), "no-such-id", ProfilePatch{})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestAdminLoginLifecycle(t *testing.T) {
	store := kv.NewMemoryStore()
	auth := NewAdminAuthService(store, models.AdminUser{
		ID:    "admin",
		Name:  "Administrador",
		Email: "admin@panacaps.co",
	}, "admin123", 0)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "admin@panacaps.co", "mal")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, auth.Current(ctx))

	admin, token, err := auth.Login(ctx, "ADMIN@panacaps.co", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Administrador", admin.Name)
	assert.NotNil(t, auth.Authenticate(ctx, token))
	assert.Nil(t, auth.Authenticate(ctx, "falso"))

	auth.Logout(ctx)
	assert.Nil(t, auth.Current(ctx))
}
