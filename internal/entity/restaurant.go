package entity

import (
	"github.com/uptrace/bun"

	"github.com/Additional-Code/restaurants/pkg/record"
)

// Restaurant is a venue listed in the directory, optionally owned by a Group.
type Restaurant struct {
	bun.BaseModel `bun:"table:restaurants,alias:r"`

	ID          int64   `bun:",pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull" json:"name" validate:"required,max=50"`
	Address     *string `bun:"address" json:"address" validate:"omitempty,max=250"`
	Type        *string `bun:"type" json:"type" validate:"omitempty,max=50"`
	Budget      *Budget `bun:"budget,type:varchar(16)" json:"budget" validate:"omitempty,budget"`
	Description *string `bun:"description" json:"description" validate:"omitempty,max=250"`
	Rating      *int    `bun:"rating" json:"rating"`
	GroupID     *int64  `bun:"group_id" json:"group_id"`
}

var restaurantSchema = record.Schema[Restaurant]{
	record.Column("id", func(r *Restaurant) any { return r.ID }),
	record.Column("name", func(r *Restaurant) any { return r.Name }),
	record.Column("address", func(r *Restaurant) any { return record.Optional(r.Address) }),
	record.Column("type", func(r *Restaurant) any { return record.Optional(r.Type) }),
	record.Column("budget", func(r *Restaurant) any { return record.Optional(r.Budget) }),
	record.Column("description", func(r *Restaurant) any { return record.Optional(r.Description) }),
	record.Column("rating", func(r *Restaurant) any { return record.Optional(r.Rating) }),
	record.Column("group_id", func(r *Restaurant) any { return record.Optional(r.GroupID) }),
}

// ToMap flattens the restaurant for JSON output. Restaurants declare no
// relations, so includeRelationships has no effect.
func (r *Restaurant) ToMap(includeRelationships bool) record.Mapping {
	return restaurantSchema.Map(r, includeRelationships)
}

// Descriptor reports the declared restaurant fields.
func (*Restaurant) Descriptor() record.Descriptor {
	return restaurantSchema.Descriptor()
}
