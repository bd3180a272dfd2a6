package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// PermissionService manages the permission catalogue
type PermissionService struct {
	repo   identity.PermissionRepository
	logger *zap.Logger
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(repo identity.PermissionRepository, l *zap.Logger) *PermissionService {
	if l == nil {
		l = zap.NewNop()
	}
	return &PermissionService{repo: repo, logger: l.Named("permissions")}
}

// Create adds a permission
func (s *PermissionService) Create(ctx context.Context, req PermissionRequest) (*PermissionResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.CreatePermission(ctx, params)
	if err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Permission created", zap.Int64("permission_id", p.ID), zap.String("name", p.Name))

	resp := ToPermissionResponse(p)
	return &resp, nil
}

// Get returns a permission by id
func (s *PermissionService) Get(ctx context.Context, id int64) (*PermissionResponse, error) {
	p, err := s.repo.FindPermissionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPermissionResponse(p)
	return &resp, nil
}

// List returns one page of permissions
func (s *PermissionService) List(ctx context.Context, opts shared.ListOptions) (*shared.Paginated[PermissionResponse], error) {
	ps, err := s.repo.ListPermissions(ctx, opts)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountPermissions(ctx)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToPermissionResponses(ps), total, opts.Page, opts.PageSize)
	return &page, nil
}

// Update replaces a permission's fields
func (s *PermissionService) Update(ctx context.Context, id int64, req PermissionRequest) (*PermissionResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdatePermission(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Permission updated", zap.Int64("permission_id", id))
	return s.Get(ctx, id)
}

// Delete removes a permission and its role grants
func (s *PermissionService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeletePermissionByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Permission deleted", zap.Int64("permission_id", id))
	return nil
}
