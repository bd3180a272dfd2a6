package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("find product: %w", NewDomainError("NOT_FOUND", "Product not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Product not found", domainErr.Message)
}

func TestListOptions_Offset(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want int
	}{
		{"no paging", ListOptions{}, 0},
		{"first page", ListOptions{Page: 1, PageSize: 20}, 0},
		{"third page", ListOptions{Page: 3, PageSize: 20}, 40},
		{"page without size", ListOptions{Page: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Offset())
		})
	}
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 45, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	unpaged := NewPaginated([]int{1, 2}, 2, 0, 0)
	assert.Equal(t, 1, unpaged.TotalPages)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))

	_, err = HashPassword("short")
	assert.True(t, errors.Is(err, NewDomainError("INVALID_PASSWORD", "")))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("john@doe.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("john at doe"))
	assert.Equal(t, "john@doe.com", NormalizeEmail("  John@Doe.COM "))
}

func TestBaseAggregateRoot_PullDomainEvents(t *testing.T) {
	agg := NewBaseAggregateRoot()
	ev := NewBaseDomainEvent("Thing", "thing", 4)
	agg.AddDomainEvent(&ev)

	assert.Len(t, agg.GetDomainEvents(), 1)
	pulled := agg.PullDomainEvents()
	require.Len(t, pulled, 1)
	assert.Equal(t, "Thing", pulled[0].EventType())
	assert.Empty(t, agg.PullDomainEvents())
}

func TestBaseAggregateRoot_Version(t *testing.T) {
	agg := NewBaseAggregateRoot()
	assert.Equal(t, 1, agg.GetVersion())
	agg.IncrementVersion()
	assert.Equal(t, 2, agg.GetVersion())
}
