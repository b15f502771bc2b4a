package stats

import (
	"math"
	"time"
)

const (
	MinStat = 0
	MaxStat = 100

	// Penalización por cada revive y su tope.
	RecoveryPenaltyStep = 10
	MaxRecoveryPenalty  = 100
	// Salud con la que vuelve una mascota revivida (antes del tope por penalización).
	RecoveryHealth = 50
)

// Stats es el vector numérico de una mascota. Hunger sube con el tiempo (100 = famélica).
type Stats struct {
	Health    int `json:"health"`
	Hunger    int `json:"hunger"`
	Happiness int `json:"happiness"`
	Energy    int `json:"energy"`
}

// Initial son los stats de una mascota recién creada.
func Initial() Stats {
	return Stats{Health: MaxStat, Hunger: MinStat, Happiness: MaxStat, Energy: MaxStat}
}

// Remainder es la parte fraccionaria que el redondeo a enteros dejó afuera.
// Se suma en el próximo cálculo, así el resultado no depende de cada cuánto se recalcula.
type Remainder struct {
	Health    float64
	Hunger    float64
	Happiness float64
	Energy    float64
}

// settle redondea valores exactos ya acotados y devuelve lo que quedó afuera.
func settle(health, hunger, happiness, energy float64) (Stats, Remainder) {
	s := Stats{
		Health:    int(math.Round(health)),
		Hunger:    int(math.Round(hunger)),
		Happiness: int(math.Round(happiness)),
		Energy:    int(math.Round(energy)),
	}
	return s, Remainder{
		Health:    health - float64(s.Health),
		Hunger:    hunger - float64(s.Hunger),
		Happiness: happiness - float64(s.Happiness),
		Energy:    energy - float64(s.Energy),
	}
}

// EffectiveMaxHealth es el techo de salud luego de las penalizaciones por revive.
func EffectiveMaxHealth(penalty int) int {
	return clampInt(MaxStat-penalty, MinStat, MaxStat)
}

// Rates son las tasas por hora y umbrales del motor de degradación.
type Rates struct {
	HungerPerHour         float64
	HappinessPerHour      float64
	EnergyDecayPerHour    float64
	EnergyRecoveryPerHour float64
	HealthPerHour         float64

	// Multiplicador aplicado a hunger/happiness/health dentro del período de gracia.
	GraceMultiplier float64
	GracePeriod     time.Duration

	// Ventana de sueño en hora local [SleepStartHour, SleepEndHour).
	SleepStartHour int
	SleepEndHour   int

	NeglectHungerAbove    int
	NeglectHappinessBelow int
	HealthLossHungerAbove int

	// Debajo de esto no se recalcula (evita thrashing por llamadas seguidas).
	MinElapsed time.Duration
}

func DefaultRates() Rates {
	return Rates{
		HungerPerHour:         1,
		HappinessPerHour:      0.5,
		EnergyDecayPerHour:    0.3,
		EnergyRecoveryPerHour: 5,
		HealthPerHour:         2,
		GraceMultiplier:       0.5,
		GracePeriod:           24 * time.Hour,
		SleepStartHour:        0,
		SleepEndHour:          6,
		NeglectHungerAbove:    50,
		NeglectHappinessBelow: 50,
		HealthLossHungerAbove: 80,
		MinElapsed:            time.Minute,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
