package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/logger"
)

var (
	// ErrEmployeeEmailTaken is returned when another employee uses the email
	ErrEmployeeEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "An employee with this email already exists")
	// ErrUnknownRole is returned when a role id does not exist
	ErrUnknownRole = shared.NewDomainError("INVALID_ROLE", "One or more roles do not exist")
)

// SubjectRevoker invalidates every token issued to a subject so far
type SubjectRevoker interface {
	RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error
}

// EmployeeService manages back-office accounts and their roles
type EmployeeService struct {
	employees identity.EmployeeRepository
	roles     identity.RoleRepository
	publisher shared.EventPublisher
	revoker   SubjectRevoker
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewEmployeeService creates a new EmployeeService. Tokens of employees that
// are disabled, deleted or get new roles are revoked for tokenTTL.
func NewEmployeeService(
	employees identity.EmployeeRepository,
	roles identity.RoleRepository,
	publisher shared.EventPublisher,
	revoker SubjectRevoker,
	tokenTTL time.Duration,
	l *zap.Logger,
) *EmployeeService {
	if l == nil {
		l = zap.NewNop()
	}
	return &EmployeeService{
		employees: employees,
		roles:     roles,
		publisher: publisher,
		revoker:   revoker,
		tokenTTL:  tokenTTL,
		logger:    l.Named("employees"),
	}
}

// Create adds an employee and assigns RoleIDs
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}

	employee, err := identity.NewEmployee(identity.EmployeeParams{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	if err := s.employees.CreateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	employee.AddDomainEvent(identity.NewEmployeeCreatedEvent(employee))

	if len(roles) > 0 {
		if err := s.employees.SyncRoles(ctx, employee.ID, uniqueIDs(req.RoleIDs)); err != nil {
			return nil, err
		}
		employee.SyncRoles(roles)
	}

	publishEvents(ctx, s.publisher, s.logger, employee)
	logger.Enrich(ctx, s.logger).Info("Employee created",
		zap.Int64("employee_id", employee.ID), zap.Strings("roles", employee.RoleNames()))

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Get returns an employee with roles
func (s *EmployeeService) Get(ctx context.Context, id int64) (*EmployeeResponse, error) {
	employee, err := s.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List returns employees ordered by opts
func (s *EmployeeService) List(ctx context.Context, opts shared.ListOptions) ([]EmployeeResponse, error) {
	employees, err := s.employees.ListEmployees(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// Update changes profile, password and status. A password change or a
// disable signs the employee out everywhere.
func (s *EmployeeService) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, id); err != nil {
		return nil, err
	}

	if err := employee.Update(identity.EmployeeParams{Name: req.Name, Email: req.Email, Password: req.Password}); err != nil {
		return nil, err
	}
	revoke := req.Password != ""
	if req.Status != nil {
		switch identity.EmployeeStatus(*req.Status) {
		case identity.EmployeeStatusDisabled:
			revoke = revoke || employee.IsActive()
			employee.Disable()
		case identity.EmployeeStatusActive:
			employee.Enable()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be active or disabled")
		}
	}

	ok, err := s.employees.UpdateEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}
	if revoke {
		s.revoke(ctx, id)
	}

	logger.Enrich(ctx, s.logger).Info("Employee updated", zap.Int64("employee_id", id), zap.String("status", string(employee.Status)))
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee and revokes its tokens
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	ok, err := s.employees.DeleteEmployeeByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	s.revoke(ctx, id)
	logger.Enrich(ctx, s.logger).Info("Employee deleted", zap.Int64("employee_id", id))
	return nil
}

// SyncRoles replaces the roles of an employee with exactly roleIDs. Tokens
// carry permissions, so existing ones are revoked.
func (s *EmployeeService) SyncRoles(ctx context.Context, id int64, roleIDs []int64) (*EmployeeResponse, error) {
	employee, err := s.employees.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	if err := s.employees.SyncRoles(ctx, id, uniqueIDs(roleIDs)); err != nil {
		return nil, err
	}

	employee.SyncRoles(roles)
	publishEvents(ctx, s.publisher, s.logger, employee)
	s.revoke(ctx, id)
	logger.Enrich(ctx, s.logger).Info("Employee roles synced",
		zap.Int64("employee_id", id), zap.Strings("roles", employee.RoleNames()))

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// ListRoles returns the roles assigned to an employee
func (s *EmployeeService) ListRoles(ctx context.Context, id int64) ([]RoleResponse, error) {
	if _, err := s.employees.FindEmployeeByID(ctx, id); err != nil {
		return nil, err
	}
	roles, err := s.employees.ListRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRoleResponses(roles), nil
}

func (s *EmployeeService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.employees.FindEmployeeByEmail(ctx, shared.NormalizeEmail(email))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrEmployeeEmailTaken
	}
	return nil
}

func (s *EmployeeService) resolveRoles(ctx context.Context, ids []int64) ([]identity.Role, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	roles, err := s.roles.FindRolesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(ids) {
		return nil, ErrUnknownRole
	}
	return roles, nil
}

func (s *EmployeeService) revoke(ctx context.Context, id int64) {
	if s.revoker == nil {
		return
	}
	subject := fmt.Sprintf("%s:%d", auth.SubjectEmployee, id)
	if err := s.revoker.RevokeSubject(ctx, subject, s.tokenTTL); err != nil {
		logger.Enrich(ctx, s.logger).Error("Failed to revoke employee tokens", zap.String("subject", subject), zap.Error(err))
	}
}
