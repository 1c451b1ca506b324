package domain

import "time"

// UserItems is the per-user document holding both saved-item lists. Cart and
// wishlist live side by side so a single fetch serves the whole header badge.
type UserItems struct {
	UserID    string     `json:"userId" bson:"user_id"`
	Cart      []ItemLine `json:"cart" bson:"cart"`
	Wishlist  []ItemLine `json:"wishlist" bson:"wishlist"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}
