// Package idgen generates order references.
package idgen

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shop/backend/internal/domain/sales"
)

// SnowflakeReferenceGenerator issues order references from snowflake ids.
// References are the id in upper-case base 36, so they sort by creation
// time and stay unique across instances with distinct node ids.
type SnowflakeReferenceGenerator struct {
	node   *snowflake.Node
	prefix string
}

// NewSnowflakeReferenceGenerator creates a generator for node (0..1023)
func NewSnowflakeReferenceGenerator(node int64, prefix string) (*SnowflakeReferenceGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeReferenceGenerator{node: n, prefix: prefix}, nil
}

// NextReference implements sales.ReferenceGenerator
func (g *SnowflakeReferenceGenerator) NextReference() string {
	return g.prefix + strings.ToUpper(g.node.Generate().Base36())
}

var _ sales.ReferenceGenerator = (*SnowflakeReferenceGenerator)(nil)
