package trade

import (
	domain "github.com/exile-tools/poemarket/pkg/types"
)

// BasicQueryMapper fills the query's name and type terms from the requested
// item. Stat and property filter translation belongs to a richer mapper
// implementation supplied by the caller.
type BasicQueryMapper struct{}

// Map implements QueryMapper.
func (BasicQueryMapper) Map(item *domain.Item, _ domain.Language, query *Query) {
	if item == nil {
		return
	}
	if item.Name != "" {
		query.Name = item.Name
	}
	if item.Type != "" {
		query.Type = item.Type
	}
}
