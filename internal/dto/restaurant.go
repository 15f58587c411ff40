package dto

import "github.com/Additional-Code/restaurants/internal/entity"

// RestaurantRequest is the body accepted when creating or replacing a restaurant.
type RestaurantRequest struct {
	Name        string         `json:"name"`
	Address     *string        `json:"address"`
	Type        *string        `json:"type"`
	Budget      *entity.Budget `json:"budget"`
	Description *string        `json:"description"`
	Rating      *int           `json:"rating"`
	GroupID     *int64         `json:"group_id"`
}

// ToEntity builds the restaurant described by the request.
func (r RestaurantRequest) ToEntity(id int64) *entity.Restaurant {
	return &entity.Restaurant{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		Type:        r.Type,
		Budget:      r.Budget,
		Description: r.Description,
		Rating:      r.Rating,
		GroupID:     r.GroupID,
	}
}

// GroupRequest is the body accepted when creating a group.
type GroupRequest struct {
	Name string `json:"name"`
}
