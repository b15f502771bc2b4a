package main

import (
	"errors"
	"time"

	"virtual-pet/internal/domain/stats"
)

var errCritical = errors.New("pet is in critical state")

// simPet replica en memoria las reglas del servicio de mascotas para simular sin storage.
type simPet struct {
	engine *stats.Engine

	stats           stats.Stats
	carry           stats.Remainder
	lastUpdate      time.Time
	lastInteraction *time.Time
	neglectStarted  *time.Time
	critical        bool
	penalty         int
	tzOffset        int

	inGrace bool
}

func newSimPet(engine *stats.Engine, start time.Time, initial stats.Stats, tzOffset int) *simPet {
	t := start
	return &simPet{
		engine:          engine,
		stats:           initial,
		lastUpdate:      start,
		lastInteraction: &t,
		tzOffset:        tzOffset,
	}
}

// advance devuelve true si la mascota acaba de entrar en Critical.
// Igual que el servicio, debajo de MinElapsed no se corre lastUpdate.
func (p *simPet) advance(now time.Time) bool {
	if now.Sub(p.lastUpdate) < p.engine.Rates().MinElapsed {
		return false
	}
	// La felicidad ya está cobrada hasta lastUpdate, igual que en el servicio.
	ref := p.lastUpdate
	if p.lastInteraction != nil && p.lastInteraction.After(ref) {
		ref = *p.lastInteraction
	}
	res := p.engine.Calculate(stats.DegradationInput{
		Current:               p.stats,
		LastUpdate:            p.lastUpdate,
		LastInteraction:       &ref,
		NeglectStartedAt:      p.neglectStarted,
		IsCritical:            p.critical,
		MaxHealthPenalty:      p.penalty,
		Carry:                 p.carry,
		TimezoneOffsetMinutes: p.tzOffset,
	}, now)

	p.stats = res.Stats
	p.carry = res.Carry
	p.lastUpdate = res.LastStatUpdate
	p.neglectStarted = res.NeglectStartedAt
	p.critical = res.IsCritical
	p.inGrace = res.InGracePeriod
	return res.EnteredCritical
}

func (p *simPet) act(a stats.Action, now time.Time) error {
	p.advance(now)
	if p.critical {
		return errCritical
	}
	p.stats, p.carry = stats.ApplyExact(a, p.stats, p.carry, p.penalty)
	t := now
	p.lastInteraction = &t
	return nil
}

// revive usa un ítem gratuito; la simulación no lleva inventario.
func (p *simPet) revive(now time.Time) stats.RecoveryResult {
	p.advance(now)
	if check := stats.CanUseRecoveryItem(p.critical, 1); !check.Allowed {
		return stats.RecoveryResult{Success: false, Health: p.stats.Health, MaxHealthPenalty: p.penalty, IsCritical: p.critical, Message: check.Reason}
	}
	res := stats.ApplyRecovery(p.stats.Health, p.penalty)
	p.stats.Health = res.Health
	p.carry = stats.Remainder{}
	p.penalty = res.MaxHealthPenalty
	p.critical = res.IsCritical
	p.neglectStarted = nil
	t := now
	p.lastInteraction = &t
	p.lastUpdate = now
	return res
}

func (p *simPet) state() string {
	switch {
	case p.critical:
		return "CRITICAL"
	case p.inGrace:
		return "grace"
	case p.neglectStarted != nil:
		return "neglected"
	default:
		return "ok"
	}
}
