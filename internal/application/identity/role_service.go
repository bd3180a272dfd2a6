package identity

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// ErrUnknownPermission is returned when a permission id does not exist
var ErrUnknownPermission = shared.NewDomainError("INVALID_PERMISSION", "One or more permissions do not exist")

// RoleService manages roles and the permissions they grant
type RoleService struct {
	roles       identity.RoleRepository
	permissions identity.PermissionRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewRoleService creates a new RoleService. publisher may be nil.
func NewRoleService(
	roles identity.RoleRepository,
	permissions identity.PermissionRepository,
	publisher shared.EventPublisher,
	l *zap.Logger,
) *RoleService {
	if l == nil {
		l = zap.NewNop()
	}
	return &RoleService{roles: roles, permissions: permissions, publisher: publisher, logger: l.Named("roles")}
}

// Create adds a role and grants PermissionIDs
func (s *RoleService) Create(ctx context.Context, req RoleRequest) (*RoleResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	perms, err := s.resolvePermissions(ctx, req.PermissionIDs)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.CreateRole(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := s.roles.AttachPermissions(ctx, role.ID, uniqueIDs(req.PermissionIDs)); err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	role.AddDomainEvent(identity.NewRoleCreatedEvent(role))
	publishEvents(ctx, s.publisher, s.logger, role)
	logger.Enrich(ctx, s.logger).Info("Role created", zap.Int64("role_id", role.ID), zap.String("name", role.Name))

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Get returns a role with its permissions
func (s *RoleService) Get(ctx context.Context, id int64) (*RoleResponse, error) {
	role, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// List returns roles ordered by opts
func (s *RoleService) List(ctx context.Context, opts shared.ListOptions) ([]RoleResponse, error) {
	roles, err := s.roles.ListRoles(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ToRoleResponses(roles), nil
}

// Update replaces a role's fields, and its permissions when PermissionIDs is set
func (s *RoleService) Update(ctx context.Context, id int64, req RoleRequest) (*RoleResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.roles.UpdateRole(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	if req.PermissionIDs != nil {
		return s.SyncPermissions(ctx, id, req.PermissionIDs)
	}

	role, err := s.roles.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.AddDomainEvent(identity.NewRoleUpdatedEvent(role))
	publishEvents(ctx, s.publisher, s.logger, role)

	resp := ToRoleResponse(role)
	return &resp, nil
}

// SyncPermissions replaces the permissions of a role with exactly ids
func (s *RoleService) SyncPermissions(ctx context.Context, roleID int64, ids []int64) (*RoleResponse, error) {
	role, err := s.roles.FindRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	perms, err := s.resolvePermissions(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := s.roles.SyncPermissions(ctx, roleID, uniqueIDs(ids)); err != nil {
		return nil, err
	}

	role.SetPermissions(perms)
	publishEvents(ctx, s.publisher, s.logger, role)
	logger.Enrich(ctx, s.logger).Info("Role permissions synced",
		zap.Int64("role_id", roleID), zap.Strings("permissions", role.PermissionNames()))

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Delete removes a role and its grants
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	ok, err := s.roles.DeleteRoleByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Role deleted", zap.Int64("role_id", id))
	return nil
}

func (s *RoleService) resolvePermissions(ctx context.Context, ids []int64) ([]identity.Permission, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []identity.Permission{}, nil
	}
	perms, err := s.permissions.FindPermissionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		return nil, ErrUnknownPermission
	}
	return perms, nil
}

func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
