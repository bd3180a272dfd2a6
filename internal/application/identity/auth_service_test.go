package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
)

type authFixture struct {
	employees *MockEmployeeRepository
	customers *MockCustomerRepository
	publisher *MockEventPublisher
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	svc       *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		employees: new(MockEmployeeRepository),
		customers: new(MockCustomerRepository),
		publisher: new(MockEventPublisher),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "shop-test",
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.svc = NewAuthService(f.employees, f.customers, f.jwt, f.blacklist, f.publisher, nil)
	return f
}

func TestAuthService_LoginEmployee(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	e := existingEmployee(t, 4)
	role := identity.Role{Name: "clerk", Permissions: testPermissions("manage-orders", "view-dashboard")}
	e.Roles = []identity.Role{role}
	f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(e, nil)

	resp, err := f.svc.LoginEmployee(ctx, LoginRequest{Email: "grace@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "employee", resp.SubjectType)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.True(t, claims.IsEmployee())
	assert.ElementsMatch(t, []string{"manage-orders", "view-dashboard"}, claims.Permissions)
}

func TestAuthService_LoginEmployeeFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.employees.On("FindEmployeeByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)
		_, err := f.svc.LoginEmployee(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(existingEmployee(t, 4), nil)
		_, err := f.svc.LoginEmployee(ctx, LoginRequest{Email: "grace@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newAuthFixture()
		e := existingEmployee(t, 4)
		e.Disable()
		f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(e, nil)
		_, err := f.svc.LoginEmployee(ctx, LoginRequest{Email: "grace@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestAuthService_RegisterAndLoginCustomer(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.customers.On("FindCustomerByEmail", ctx, "sam@example.com").Return(nil, shared.ErrNotFound).Once()
	f.customers.On("CreateCustomer", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.svc.RegisterCustomer(ctx, RegisterCustomerRequest{Name: "Sam", Email: "Sam@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "customer", resp.SubjectType)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Empty(t, resp.Permissions)

	events := f.publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	assert.Equal(t, []string{customer.EventTypeCustomerRegistered}, eventTypes(events))

	registered := f.customers.Calls[1].Arguments.Get(1).(*customer.Customer)
	f.customers.On("FindCustomerByEmail", ctx, "sam@example.com").Return(registered, nil)

	login, err := f.svc.LoginCustomer(ctx, LoginRequest{Email: "sam@example.com", Password: "password123"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "customer:7", claims.Principal())

	_, err = f.svc.RegisterCustomer(ctx, RegisterCustomerRequest{Name: "Sam", Email: "sam@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrCustomerEmailTaken)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	token, err := f.jwt.GenerateToken(auth.TokenInput{SubjectType: auth.SubjectCustomer, UserID: 7})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, f.svc.Logout(ctx, nil))
}
