package stats

import (
	"math"
	"time"
)

// DegradationInput es la foto de la mascota que se va a recalcular.
type DegradationInput struct {
	Current          Stats
	LastUpdate       time.Time
	LastInteraction  *time.Time
	NeglectStartedAt *time.Time
	IsCritical       bool
	MaxHealthPenalty int

	// Carry es el Remainder del cálculo anterior; cero si el caller no lo guarda.
	Carry Remainder

	// Minutos al este de UTC (hora local = UTC + offset).
	TimezoneOffsetMinutes int
}

// UpdateResult es la nueva foto autoritativa; persistirla es responsabilidad del caller.
type UpdateResult struct {
	Stats            Stats
	LastStatUpdate   time.Time
	NeglectStartedAt *time.Time
	IsCritical       bool
	Carry            Remainder

	// EnteredCritical es true sólo en la transición Normal -> Critical.
	EnteredCritical bool
	InGracePeriod   bool
}

// Engine aplica la degradación temporal con un set de tasas.
// No tiene estado mutable; es seguro usarlo concurrentemente.
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

func (e *Engine) Rates() Rates { return e.rates }

var defaultEngine = NewEngine(DefaultRates())

// CalculateStatDegradation usa las tasas por defecto.
func CalculateStatDegradation(in DegradationInput, now time.Time) UpdateResult {
	return defaultEngine.Calculate(in, now)
}

// Calculate es una función pura de in y now.
func (e *Engine) Calculate(in DegradationInput, now time.Time) UpdateResult {
	r := e.rates
	elapsed := now.Sub(in.LastUpdate)

	if elapsed < r.MinElapsed {
		return UpdateResult{
			Stats:            in.Current,
			LastStatUpdate:   now,
			NeglectStartedAt: in.NeglectStartedAt,
			IsCritical:       in.IsCritical,
			Carry:            in.Carry,
		}
	}

	// En estado crítico no se degrada nada más; la salud queda en 0 hasta el revive.
	if in.IsCritical {
		s := in.Current
		s.Health = MinStat
		return UpdateResult{
			Stats:            s,
			LastStatUpdate:   now,
			NeglectStartedAt: in.NeglectStartedAt,
			IsCritical:       true,
		}
	}

	hours := elapsed.Hours()
	hoursSinceInteraction := hours
	if in.LastInteraction != nil {
		hoursSinceInteraction = math.Max(0, now.Sub(*in.LastInteraction).Hours())
	}

	neglectStartedAt := e.neglectMarker(in, now)
	inGrace := neglectStartedAt != nil && now.Sub(*neglectStartedAt) < r.GracePeriod
	mult := 1.0
	if inGrace {
		mult = r.GraceMultiplier
	}

	cur := in.Current
	hunger := clampFloat(float64(cur.Hunger)+in.Carry.Hunger+hours*r.HungerPerHour*mult, MinStat, MaxStat)
	happiness := clampFloat(float64(cur.Happiness)+in.Carry.Happiness-hoursSinceInteraction*r.HappinessPerHour*mult, MinStat, MaxStat)

	energy := float64(cur.Energy) + in.Carry.Energy
	if e.inSleepWindow(now, in.TimezoneOffsetMinutes) {
		energy += hours * r.EnergyRecoveryPerHour
	} else {
		energy -= hours * r.EnergyDecayPerHour
	}
	energy = clampFloat(energy, MinStat, MaxStat)

	health := float64(cur.Health) + in.Carry.Health
	if hunger > float64(r.HealthLossHungerAbove) {
		health -= hours * r.HealthPerHour * mult
	}
	health = clampFloat(health, MinStat, float64(EffectiveMaxHealth(in.MaxHealthPenalty)))

	next, carry := settle(health, hunger, happiness, energy)

	critical := next.Health <= MinStat
	if critical {
		carry = Remainder{}
	}
	return UpdateResult{
		Stats:            next,
		LastStatUpdate:   now,
		NeglectStartedAt: neglectStartedAt,
		IsCritical:       critical,
		Carry:            carry,
		EnteredCritical:  critical,
		InGracePeriod:    inGrace,
	}
}

// IsInGracePeriod usa la ventana de gracia configurada en el motor.
func (e *Engine) IsInGracePeriod(neglectStartedAt *time.Time, now time.Time) bool {
	if neglectStartedAt == nil {
		return false
	}
	return now.Sub(*neglectStartedAt) < e.rates.GracePeriod
}

// neglectMarker estampa el inicio del descuido la primera vez que se detecta
// y lo limpia apenas la mascota sale de esa condición.
func (e *Engine) neglectMarker(in DegradationInput, now time.Time) *time.Time {
	neglected := in.Current.Hunger > e.rates.NeglectHungerAbove ||
		in.Current.Happiness < e.rates.NeglectHappinessBelow
	if !neglected {
		return nil
	}
	if in.NeglectStartedAt != nil {
		t := *in.NeglectStartedAt
		return &t
	}
	t := now
	return &t
}

func (e *Engine) inSleepWindow(now time.Time, offsetMinutes int) bool {
	hour := now.UTC().Add(time.Duration(offsetMinutes) * time.Minute).Hour()
	start, end := e.rates.SleepStartHour, e.rates.SleepEndHour
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
