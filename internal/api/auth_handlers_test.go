package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/kv"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthRouter wires only the auth and wishlist services; the catalog-backed
// handlers are registered but never exercised here.
func newAuthRouter(t *testing.T) (*gin.Engine, *service.WishlistService, *kv.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kv.NewMemoryStore()
	customerAuth := service.NewCustomerAuthService(store, 0)
	wishlist := service.NewWishlistService(store)

	h := NewHandler(nil, nil, nil, customerAuth, wishlist, nil, nil, nil, nil, nil, nil)
	router := gin.New()
	h.SetupRoutes(router)
	return router, wishlist, store
}

type authResponse struct {
	Success bool `json:"success"`
	Data    struct {
		User struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
		Token    string  `json:"token"`
		Wishlist []int64 `json:"wishlist"`
	} `json:"data"`
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterMergesGuestWishlist(t *testing.T) {
	router, wishlist, store := newAuthRouter(t)
	ctx := context.Background()

	wishlist.Add(ctx, "", 1)
	wishlist.Add(ctx, "", 2)

	w := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"Ana Torres","email":"ana@example.com","password":"secreto1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.User.ID)
	assert.ElementsMatch(t, []int64{1, 2}, resp.Data.Wishlist)

	// the guest items now live in the new account's scope
	assert.ElementsMatch(t, []int64{1, 2}, wishlist.List(ctx, resp.Data.User.ID))

	// and the guest key is gone, so the next login absorbs nothing
	_, ok, err := store.Get(ctx, kv.KeyWishlistGuest)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, wishlist.List(ctx, ""))
}

func TestLoginMergesGuestWishlist(t *testing.T) {
	router, wishlist, store := newAuthRouter(t)
	ctx := context.Background()

	w := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"Ana Torres","email":"ana@example.com","password":"secreto1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	wishlist.Add(ctx, registered.Data.User.ID, 3)

	// a later guest browse collects more items before logging back in
	wishlist.Add(ctx, "", 2)

	w = postJSON(t, router, "/api/v1/auth/login",
		`{"email":"ana@example.com","password":"secreto1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []int64{2, 3}, resp.Data.Wishlist)

	_, ok, err := store.Get(ctx, kv.KeyWishlistGuest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	w := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"Ana Torres","email":"ana@example.com","password":"secreto1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.User.Password)
}
