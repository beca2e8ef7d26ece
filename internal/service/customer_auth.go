package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerAuthService authenticates customers against the persisted customer
// list and keeps the active session (token + user record) in the key-value
// store. It mirrors AdminAuthService under its own keys.
type CustomerAuthService struct {
	kv      kv.Store
	latency time.Duration
	logger  *zap.Logger
}

// RegisterRequest carries the fields a new account is created with.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Department string `json:"department"`
	City       string `json:"city"`
}

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
	City       *string `json:"city"`
}

// NewCustomerAuthService creates a customer auth service.
func NewCustomerAuthService(store kv.Store, latency time.Duration) *CustomerAuthService {
	return &CustomerAuthService{
		kv:      store,
		latency: latency,
		logger:  util.GetLogger(),
	}
}

func (s *CustomerAuthService) loadCustomers(ctx context.Context) []models.Customer {
	var customers []models.Customer
	kv.Load(ctx, s.kv, kv.KeyCustomers, &customers, false)
	return customers
}

// Login matches the email case-insensitively and the password against its
// encoded form. Success refreshes the token and session record and returns
// the customer; failure rejects with the user-facing message and performs no
// state change.
func (s *CustomerAuthService) Login(ctx context.Context, email, password string) (*models.Customer, string, error) {
	time.Sleep(s.latency)

	for _, customer := range s.loadCustomers(ctx) {
		if strings.EqualFold(customer.Email, email) && passwordMatches(password, customer.Password) {
			token := newToken()
			if err := s.kv.Set(ctx, kv.KeyCustomerToken, token); err != nil {
				s.logger.Error("Failed to store customer token", zap.Error(err))
			}
			kv.Save(ctx, s.kv, kv.KeyCustomerUser, customer)

			util.LoginsTotal.WithLabelValues("customer", "success").Inc()
			s.logger.Info("Customer logged in", zap.String("customer_id", customer.ID))
			result := customer
			return &result, token, nil
		}
	}

	util.LoginsTotal.WithLabelValues("customer", "failure").Inc()
	return nil, "", ErrInvalidCredentials
}

// Register rejects duplicate emails (case-insensitive), appends the new
// customer to the persisted list and auto-logs-in.
func (s *CustomerAuthService) Register(ctx context.Context, req RegisterRequest) (*models.Customer, string, error) {
	time.Sleep(s.latency)

	customers := s.loadCustomers(ctx)
	for _, existing := range customers {
		if strings.EqualFold(existing.Email, req.Email) {
			util.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			return nil, "", ErrEmailTaken
		}
	}

	customer := models.Customer{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   encodePassword(req.Password),
		Phone:      req.Phone,
		Address:    req.Address,
		Department: req.Department,
		City:       req.City,
		CreatedAt:  time.Now(),
	}

	customers = append(customers, customer)
	kv.Save(ctx, s.kv, kv.KeyCustomers, customers)

	token := newToken()
	if err := s.kv.Set(ctx, kv.KeyCustomerToken, token); err != nil {
		s.logger.Error("Failed to store customer token", zap.Error(err))
	}
	kv.Save(ctx, s.kv, kv.KeyCustomerUser, customer)

	util.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Customer registered", zap.String("customer_id", customer.ID))

	result := customer
	return &result, token, nil
}

// Logout deletes both session keys.
func (s *CustomerAuthService) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, kv.KeyCustomerToken); err != nil {
		s.logger.Warn("Failed to delete customer token", zap.Error(err))
	}
	if err := s.kv.Delete(ctx, kv.KeyCustomerUser); err != nil {
		s.logger.Warn("Failed to delete customer session", zap.Error(err))
	}
}

// Current returns the logged-in customer, or nil. Token and a parseable
// session record are both required; there is no expiry check.
func (s *CustomerAuthService) Current(ctx context.Context) *models.Customer {
	_, ok, err := s.kv.Get(ctx, kv.KeyCustomerToken)
	if err != nil || !ok {
		return nil
	}

	var customer models.Customer
	if !kv.Load(ctx, s.kv, kv.KeyCustomerUser, &customer, false) {
		return nil
	}
	return &customer
}

// Authenticate resolves a presented bearer token to the customer session.
func (s *CustomerAuthService) Authenticate(ctx context.Context, token string) *models.Customer {
	stored, ok, err := s.kv.Get(ctx, kv.KeyCustomerToken)
	if err != nil || !ok || token == "" || stored != token {
		return nil
	}

	var customer models.Customer
	if !kv.Load(ctx, s.kv, kv.KeyCustomerUser, &customer, false) {
		return nil
	}
	return &customer
}

// UpdateProfile merges the patch into the stored customer, persists the full
// list and refreshes the active session record to match.
func (s *CustomerAuthService) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.Customer, error) {
	time.Sleep(s.latency)

	customers := s.loadCustomers(ctx)
	for i := range customers {
		if customers[i].ID != id {
			continue
		}

		if patch.Name != nil {
			customers[i].Name = *patch.Name
		}
		if patch.Phone != nil {
			customers[i].Phone = *patch.Phone
		}
		if patch.Address != nil {
			customers[i].Address = *patch.Address
		}
		if patch.Department != nil {
			customers[i].Department = *patch.Department
		}
		if patch.City != nil {
			customers[i].City = *patch.City
		}

		kv.Save(ctx, s.kv, kv.KeyCustomers, customers)
		kv.Save(ctx, s.kv, kv.KeyCustomerUser, customers[i])

		s.logger.Info("Customer profile updated", zap.String("customer_id", id))
		result := customers[i]
		return &result, nil
	}

	return nil, ErrCustomerNotFound
}
