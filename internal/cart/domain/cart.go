package domain

// ItemLine is a single product reference with quantity and prices snapshotted
// at add-time, so historical carts and orders are insulated from later
// catalog edits. The same shape is embedded in the user record's cart and
// wishlist arrays; wishlist entries carry no quantity semantics.
type ItemLine struct {
	ProductID     string  `json:"productId" bson:"productId"`
	Name          string  `json:"name" bson:"name"`
	Image         string  `json:"image,omitempty" bson:"image,omitempty"`
	Price         float64 `json:"price" bson:"price"`
	Quantity      int     `json:"quantity,omitempty" bson:"quantity,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Discount      float64 `json:"discount,omitempty" bson:"discount,omitempty"`
}

// Snapshot is the display copy of a catalog product taken when an item is
// added. OriginalPrice and Discount are only meaningful for wishlist entries.
type Snapshot struct {
	Name          string
	Image         string
	Price         float64
	OriginalPrice float64
	Discount      float64
}

// AddToCart appends a new line for productID or, when one already exists,
// increments its quantity by qty. The input slice is never mutated; a fresh
// slice is returned. Within a cart productID values are unique.
func AddToCart(cart []ItemLine, productID string, snap Snapshot, qty int) ([]ItemLine, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Reason: "is required"}
	}
	if qty < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if snap.Price < 0 {
		return nil, &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	next := make([]ItemLine, len(cart))
	copy(next, cart)

	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity += qty
			return next, nil
		}
	}

	next = append(next, ItemLine{
		ProductID: productID,
		Name:      snap.Name,
		Image:     snap.Image,
		Price:     snap.Price,
		Quantity:  qty,
	})
	return next, nil
}

// RemoveFromCart drops the line for productID. Removing an absent line is a
// no-op, so the operation is safe to repeat.
func RemoveFromCart(cart []ItemLine, productID string) []ItemLine {
	next := make([]ItemLine, 0, len(cart))
	for _, line := range cart {
		if line.ProductID == productID {
			continue
		}
		next = append(next, line)
	}
	return next
}

// UpdateCartQuantity overwrites the quantity of an existing line. A qty of
// zero or less removes the line. A missing line is a caller error.
func UpdateCartQuantity(cart []ItemLine, productID string, qty int) ([]ItemLine, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "productId", Reason: "is required"}
	}
	if qty <= 0 {
		return RemoveFromCart(cart, productID), nil
	}

	next := make([]ItemLine, len(cart))
	copy(next, cart)

	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = qty
			return next, nil
		}
	}
	return nil, &NotFoundError{ProductID: productID}
}

// ToggleWishlist removes the entry for productID when present and adds it
// when absent, mirroring the single wishlist button in the UI. The returned
// bool reports whether the item ended up in the list.
func ToggleWishlist(list []ItemLine, productID string, snap Snapshot) ([]ItemLine, bool, error) {
	if productID == "" {
		return nil, false, &ValidationError{Field: "productId", Reason: "is required"}
	}
	if snap.Price < 0 {
		return nil, false, &ValidationError{Field: "price", Reason: "must not be negative"}
	}

	for _, line := range list {
		if line.ProductID == productID {
			return RemoveFromCart(list, productID), false, nil
		}
	}

	next := make([]ItemLine, len(list))
	copy(next, list)
	next = append(next, ItemLine{
		ProductID:     productID,
		Name:          snap.Name,
		Image:         snap.Image,
		Price:         snap.Price,
		OriginalPrice: snap.OriginalPrice,
		Discount:      snap.Discount,
	})
	return next, true, nil
}

// MergeCart reconciles a server-fetched cart with pending local changes.
// Lines are unioned by productID and the local quantity wins on conflict,
// so a slow refetch cannot revert a fast double-click. Repeated local
// entries collapse to the last occurrence, and a local quantity below one
// removes the line, the same contract as UpdateCartQuantity. The result
// never holds duplicate productIDs or non-positive quantities. Remote
// ordering is preserved; local-only lines are appended in their own order.
func MergeCart(remote, local []ItemLine) []ItemLine {
	localByID := make(map[string]ItemLine, len(local))
	for _, line := range local {
		localByID[line.ProductID] = line
	}

	merged := make([]ItemLine, 0, len(remote)+len(local))
	seen := make(map[string]bool, len(remote)+len(local))

	for _, line := range remote {
		if override, ok := localByID[line.ProductID]; ok {
			line.Quantity = override.Quantity
		}
		seen[line.ProductID] = true
		if line.Quantity < 1 {
			continue
		}
		merged = append(merged, line)
	}

	for _, line := range local {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		line = localByID[line.ProductID]
		if line.Quantity < 1 {
			continue
		}
		merged = append(merged, line)
	}

	return merged
}
