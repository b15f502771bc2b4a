package pets

import (
	"encoding/json"
	"time"

	"virtual-pet/internal/domain/stats"
	"virtual-pet/internal/domain/traits"
)

const (
	MaxNameLength = 40

	// Rango de offsets horarios reales (UTC-12 a UTC+14), en minutos.
	MinTimezoneOffset = -12 * 60
	MaxTimezoneOffset = 14 * 60
)

// Pet es el registro persistido de una mascota virtual.
type Pet struct {
	ID          string
	OwnerUserID string

	Name string

	// Traits es el blob tal como se guardó. Se lee siempre a través de traits.Loader.
	Traits json.RawMessage

	Stats            stats.Stats
	LastStatUpdate   time.Time
	LastInteraction  *time.Time
	NeglectStartedAt *time.Time
	IsCritical       bool
	MaxHealthPenalty int

	// StatCarry es la fracción que el redondeo dejó afuera en el último cálculo.
	StatCarry stats.Remainder

	TimezoneOffsetMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot es la vista completa de una mascota: stats al día, rasgos cargados y avisos.
type Snapshot struct {
	Pet                Pet
	Traits             traits.PetTraits
	Warnings           []stats.Warning
	EffectiveMaxHealth int
	InGracePeriod      bool
}

// SweepReport resume una pasada de RefreshAll. Updated cuenta sólo las mascotas
// que se guardaron; debajo de MinElapsed no se toca nada.
type SweepReport struct {
	Scanned         int
	Updated         int
	Failed          int
	EnteredCritical int
}
