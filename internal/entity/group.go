package entity

import (
	"github.com/uptrace/bun"

	"github.com/Additional-Code/restaurants/pkg/record"
)

// Group collects restaurants under a shared owner.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID          int64         `bun:",pk,autoincrement" json:"id"`
	Name        string        `bun:"name,notnull,unique" json:"name" validate:"required,max=100"`
	Restaurants []*Restaurant `bun:"rel:has-many,join:id=group_id" json:"restaurants,omitempty"`
}

var groupSchema = record.Schema[Group]{
	record.Column("id", func(g *Group) any { return g.ID }),
	record.Column("name", func(g *Group) any { return g.Name }),
	record.HasMany("restaurants", func(g *Group) []*Restaurant { return g.Restaurants }),
}

// ToMap flattens the group, expanding its restaurants one level when asked.
func (g *Group) ToMap(includeRelationships bool) record.Mapping {
	return groupSchema.Map(g, includeRelationships)
}

// Descriptor reports the declared group fields.
func (*Group) Descriptor() record.Descriptor {
	return groupSchema.Descriptor()
}

// Models lists every persisted record type, in dependency order.
func Models() []record.Described {
	return []record.Described{(*Group)(nil), (*Restaurant)(nil)}
}
