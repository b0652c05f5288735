package models

import "time"

// House is the user-facing storage unit (e.g. "My Home").
// The selected House is persisted locally as "current".
type House struct {
	// ID is the remote identifier of the house.
	ID string `json:"id"`

	// Name is the display name. It is also the key used to find the
	// backing Household, see Household.
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	CreatedDate time.Time `json:"createdDate"`
}

// Household is the grouping entity that owns Kitchens.
//
// A Household is linked to a House only by Name equality. Duplicate names
// collide and renames break the link.
type Household struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kitchens []Kitchen `json:"kitchens,omitempty"`
}

// Kitchen is the backing container that actually holds inventory items for
// a House. At most one Kitchen is created per House.
type Kitchen struct {
	ID          string `json:"id"`
	HouseholdID string `json:"householdId,omitempty"`
	Name        string `json:"name"`
}
