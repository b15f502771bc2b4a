package stats

import (
	"fmt"
	"time"
)

// RecoveryResult es el resultado de revivir una mascota en estado crítico.
type RecoveryResult struct {
	Success          bool   `json:"success"`
	Health           int    `json:"health"`
	MaxHealthPenalty int    `json:"max_health_penalty"`
	IsCritical       bool   `json:"is_critical"`
	Message          string `json:"message"`
}

// Eligibility es el chequeo previo a usar un ítem de recuperación (no muta nada).
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

const (
	ReasonNotCritical = "pet is not in critical state"
	ReasonNoItems     = "no recovery items available"
)

// ApplyRecovery saca a la mascota de Critical. Cada uso sube la penalización de
// salud máxima en 10 puntos (tope 100), de forma permanente.
// La salud restaurada no depende de currentHealth (en Critical siempre es 0).
func ApplyRecovery(currentHealth, currentPenalty int) RecoveryResult {
	penalty := currentPenalty + RecoveryPenaltyStep
	if penalty > MaxRecoveryPenalty {
		penalty = MaxRecoveryPenalty
	}
	if penalty < 0 {
		penalty = 0
	}
	maxHealth := EffectiveMaxHealth(penalty)
	health := min(RecoveryHealth, maxHealth)

	return RecoveryResult{
		Success:          true,
		Health:           health,
		MaxHealthPenalty: penalty,
		IsCritical:       false,
		Message:          fmt.Sprintf("Your pet has been revived! Max health is now %d.", maxHealth),
	}
}

// CanUseRecoveryItem exige que la mascota esté en Critical y que haya al menos un ítem.
func CanUseRecoveryItem(petIsCritical bool, itemQuantity int) Eligibility {
	if !petIsCritical {
		return Eligibility{Allowed: false, Reason: ReasonNotCritical}
	}
	if itemQuantity < 1 {
		return Eligibility{Allowed: false, Reason: ReasonNoItems}
	}
	return Eligibility{Allowed: true}
}

// IsInGracePeriod: neglectStartedAt seteado y con menos de 24h de antigüedad.
// Con tasas configuradas usar Engine.IsInGracePeriod.
func IsInGracePeriod(neglectStartedAt *time.Time, now time.Time) bool {
	return defaultEngine.IsInGracePeriod(neglectStartedAt, now)
}
