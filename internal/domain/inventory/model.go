package inventory

import "time"

// ItemType identifica un ítem consumible.
type ItemType string

const (
	// ItemRevivalPotion es el único ítem de recuperación por ahora.
	ItemRevivalPotion ItemType = "revival_potion"
)

var ItemTypes = []ItemType{ItemRevivalPotion}

func (t ItemType) Valid() bool {
	for _, v := range ItemTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Item es el stock de un tipo de ítem para un usuario.
type Item struct {
	UserID   string
	ItemType ItemType
	Quantity int

	UpdatedAt time.Time
}
