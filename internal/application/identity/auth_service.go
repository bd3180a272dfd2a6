package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	// ErrAccountDisabled is returned when a disabled account signs in
	ErrAccountDisabled = shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	// ErrCustomerEmailTaken is returned when registering an existing email
	ErrCustomerEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
)

// AuthService signs employees and customers in and out
type AuthService struct {
	employees identity.EmployeeRepository
	customers customer.CustomerRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. blacklist and publisher may be nil.
func NewAuthService(
	employees identity.EmployeeRepository,
	customers customer.CustomerRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	l *zap.Logger,
) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{
		employees: employees,
		customers: customers,
		jwt:       jwt,
		blacklist: blacklist,
		publisher: publisher,
		logger:    l.Named("auth"),
	}
}

// LoginEmployee authenticates staff. The token carries the permission names
// granted by the employee's roles.
func (s *AuthService) LoginEmployee(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := logger.Enrich(ctx, s.logger)

	employee, err := s.employees.FindEmployeeByEmail(ctx, shared.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Info("Employee login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !employee.VerifyPassword(req.Password) {
		log.Info("Employee login failed: wrong password", zap.Int64("employee_id", employee.ID))
		return nil, ErrInvalidCredentials
	}
	if !employee.IsActive() {
		return nil, ErrAccountDisabled
	}

	resp, err := s.issue(auth.TokenInput{
		SubjectType: auth.SubjectEmployee,
		UserID:      employee.ID,
		Name:        employee.Name,
		Email:       employee.Email,
		Permissions: employee.PermissionNames(),
	})
	if err != nil {
		return nil, err
	}
	log.Info("Employee logged in", zap.Int64("employee_id", employee.ID))
	return resp, nil
}

// LoginCustomer authenticates a shopper
func (s *AuthService) LoginCustomer(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	c, err := s.customers.FindCustomerByEmail(ctx, shared.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !c.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !c.Status {
		return nil, ErrAccountDisabled
	}
	return s.issue(auth.TokenInput{SubjectType: auth.SubjectCustomer, UserID: c.ID, Name: c.Name, Email: c.Email})
}

// RegisterCustomer creates a shopper account and signs it in
func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*LoginResponse, error) {
	_, err := s.customers.FindCustomerByEmail(ctx, shared.NormalizeEmail(req.Email))
	switch {
	case err == nil:
		return nil, ErrCustomerEmailTaken
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	c, err := customer.NewCustomer(customer.CustomerParams{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	if err := s.customers.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	c.AddDomainEvent(customer.NewCustomerRegisteredEvent(c))
	publishEvents(ctx, s.publisher, s.logger, c)
	logger.Enrich(ctx, s.logger).Info("Customer registered", zap.Int64("customer_id", c.ID))

	return s.issue(auth.TokenInput{SubjectType: auth.SubjectCustomer, UserID: c.ID, Name: c.Name, Email: c.Email})
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Logged out", zap.String("principal", claims.Principal()))
	return nil
}

func (s *AuthService) issue(input auth.TokenInput) (*LoginResponse, error) {
	token, err := s.jwt.GenerateToken(input)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		SubjectType: string(input.SubjectType),
		UserID:      input.UserID,
		Name:        input.Name,
		Email:       input.Email,
		Permissions: input.Permissions,
	}, nil
}
