package pets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"virtual-pet/internal/domain/events"
	"virtual-pet/internal/domain/inventory"
	"virtual-pet/internal/domain/stats"
	"virtual-pet/internal/domain/traits"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("pet not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPetCritical     = errors.New("pet is in critical state")
	ErrNotCritical     = errors.New("pet is not in critical state")
	ErrNoRecoveryItems = errors.New("no recovery items available")
)

// Options agrupa las dependencias opcionales del servicio.
type Options struct {
	Events    *events.Service
	Inventory *inventory.Service
	Engine    *stats.Engine
	Loader    *traits.Loader
	Logger    *zap.Logger

	// Mascotas refrescadas en paralelo por RefreshAll; default 4.
	SweepConcurrency int
}

type Service struct {
	repo      Repository
	events    *events.Service
	inventory *inventory.Service
	engine    *stats.Engine
	loader    *traits.Loader
	log       *zap.Logger
	locks     *keyedMutex
	now       func() time.Time

	sweepConcurrency int
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = stats.NewEngine(stats.DefaultRates())
	}
	concurrency := opts.SweepConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	loader := opts.Loader
	if loader == nil {
		loader = traits.NewLoader(log)
	}

	return &Service{
		repo:      repo,
		events:    opts.Events,
		inventory: opts.Inventory,
		engine:    engine,
		loader:    loader,
		log:       log.Named("pets"),
		locks:     newKeyedMutex(),
		now:       time.Now,

		sweepConcurrency: concurrency,
	}
}

type CreateInput struct {
	Name                  string
	TimezoneOffsetMinutes int
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len([]rune(name)) > MaxNameLength {
		return Pet{}, ErrInvalidInput
	}
	if in.TimezoneOffsetMinutes < MinTimezoneOffset || in.TimezoneOffsetMinutes > MaxTimezoneOffset {
		return Pet{}, ErrInvalidInput
	}

	id := uuid.NewString()
	blob, err := json.Marshal(traits.GeneratePetTraits(id))
	if err != nil {
		return Pet{}, fmt.Errorf("encode traits: %w", err)
	}

	now := s.now()
	p := Pet{
		ID:                    id,
		OwnerUserID:           ownerUserID,
		Name:                  name,
		Traits:                blob,
		Stats:                 stats.Initial(),
		LastStatUpdate:        now,
		LastInteraction:       &now,
		TimezoneOffsetMinutes: in.TimezoneOffsetMinutes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	s.record(ctx, p.ID, ownerActor(ownerUserID), events.EventTypePetCreated, "Pet adopted", name)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListByOwner devuelve las mascotas del usuario con los stats recalculados a "now".
func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	out := make([]Pet, 0, len(items))
	for _, it := range items {
		p, _, err := s.refreshByID(ctx, it.ID)
		if err != nil {
			s.log.Warn("stat refresh failed", zap.String("pet_id", it.ID), zap.Error(err))
			p = it
		}
		out = append(out, p)
	}
	return out, nil
}

// Snapshot recalcula stats, carga rasgos y arma los avisos de la mascota.
func (s *Service) Snapshot(ctx context.Context, petID, userID string) (Snapshot, error) {
	unlock := s.locks.Lock(petID)
	defer unlock()

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := authorize(p, userID); err != nil {
		return Snapshot{}, err
	}

	now := s.now()
	p, _, err = s.refreshLocked(ctx, p, now)
	if err != nil {
		return Snapshot{}, err
	}

	t, err := s.traitsLocked(ctx, &p, now)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Pet:                p,
		Traits:             t,
		Warnings:           stats.Warnings(p.Stats, p.IsCritical),
		EffectiveMaxHealth: stats.EffectiveMaxHealth(p.MaxHealthPenalty),
		InGracePeriod:      s.engine.IsInGracePeriod(p.NeglectStartedAt, now),
	}, nil
}

// Traits devuelve los rasgos de la mascota pasando el blob guardado, sin tipar, por el Loader.
// Si el Loader tuvo que regenerar (blob inválido o versión desconocida) se persiste el nuevo.
func (s *Service) Traits(ctx context.Context, petID, userID string) (traits.PetTraits, error) {
	unlock := s.locks.Lock(petID)
	defer unlock()

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return traits.PetTraits{}, err
	}
	if err := authorize(p, userID); err != nil {
		return traits.PetTraits{}, err
	}
	return s.traitsLocked(ctx, &p, s.now())
}

func (s *Service) traitsLocked(ctx context.Context, p *Pet, now time.Time) (traits.PetTraits, error) {
	t, regenerated := s.loader.Resolve(json.RawMessage(p.Traits), p.ID)
	if !regenerated {
		return t, nil
	}

	blob, err := json.Marshal(t)
	if err != nil {
		return traits.PetTraits{}, fmt.Errorf("encode traits: %w", err)
	}
	p.Traits = blob
	p.UpdatedAt = now
	if err := s.repo.Update(ctx, *p); err != nil {
		return traits.PetTraits{}, err
	}

	s.record(ctx, p.ID, events.SystemActor, events.EventTypeTraitsRegenerated, "Traits regenerated", "")
	return t, nil
}

// RefreshStats aplica la degradación pendiente y persiste el resultado.
func (s *Service) RefreshStats(ctx context.Context, petID string) (Pet, error) {
	p, _, err := s.refreshByID(ctx, petID)
	return p, err
}

func (s *Service) refreshByID(ctx context.Context, petID string) (Pet, refreshOutcome, error) {
	unlock := s.locks.Lock(petID)
	defer unlock()

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, refreshOutcome{}, err
	}
	return s.refreshLocked(ctx, p, s.now())
}

type refreshOutcome struct {
	Saved           bool
	EnteredCritical bool
}

// refreshLocked requiere el lock de la mascota.
func (s *Service) refreshLocked(ctx context.Context, p Pet, now time.Time) (Pet, refreshOutcome, error) {
	// Debajo del mínimo no se persiste: correr LastStatUpdate sin degradar perdería tiempo acumulado.
	if now.Sub(p.LastStatUpdate) < s.engine.Rates().MinElapsed {
		return p, refreshOutcome{}, nil
	}

	res := s.engine.Calculate(stats.DegradationInput{
		Current:               p.Stats,
		LastUpdate:            p.LastStatUpdate,
		LastInteraction:       happinessReference(p),
		NeglectStartedAt:      p.NeglectStartedAt,
		IsCritical:            p.IsCritical,
		MaxHealthPenalty:      p.MaxHealthPenalty,
		Carry:                 p.StatCarry,
		TimezoneOffsetMinutes: p.TimezoneOffsetMinutes,
	}, now)

	p.Stats = res.Stats
	p.StatCarry = res.Carry
	p.LastStatUpdate = res.LastStatUpdate
	p.NeglectStartedAt = res.NeglectStartedAt
	p.IsCritical = res.IsCritical
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, refreshOutcome{}, err
	}

	if res.EnteredCritical {
		s.log.Info("pet entered critical state", zap.String("pet_id", p.ID), zap.String("owner_user_id", p.OwnerUserID))
		s.record(ctx, p.ID, events.SystemActor, events.EventTypeEnteredCritical, "Pet collapsed", "Health reached zero")
	}
	return p, refreshOutcome{Saved: true, EnteredCritical: res.EnteredCritical}, nil
}

// happinessReference: la felicidad ya quedó cobrada hasta LastStatUpdate. Pasar la
// interacción tal cual volvería a cobrar ese tramo en cada refresh; desde la última
// interacción el descuento acumulado es igual a horas desde la interacción * tasa.
func happinessReference(p Pet) *time.Time {
	if p.LastInteraction == nil {
		return nil
	}
	ref := *p.LastInteraction
	if p.LastStatUpdate.After(ref) {
		ref = p.LastStatUpdate
	}
	return &ref
}

func (s *Service) Feed(ctx context.Context, petID, userID string) (Pet, error) {
	return s.care(ctx, petID, userID, stats.ActionFeed, events.EventTypeFed, "Fed")
}

func (s *Service) Play(ctx context.Context, petID, userID string) (Pet, error) {
	return s.care(ctx, petID, userID, stats.ActionPlay, events.EventTypePlayed, "Played")
}

func (s *Service) Chat(ctx context.Context, petID, userID string) (Pet, error) {
	return s.care(ctx, petID, userID, stats.ActionChat, events.EventTypeChatted, "Chatted")
}

func (s *Service) care(ctx context.Context, petID, userID string, action stats.Action, typ events.EventType, title string) (Pet, error) {
	unlock := s.locks.Lock(petID)
	defer unlock()

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if err := authorize(p, userID); err != nil {
		return Pet{}, err
	}

	// Primero se cobra el tiempo transcurrido; la acción aplica sobre stats al día.
	now := s.now()
	p, _, err = s.refreshLocked(ctx, p, now)
	if err != nil {
		return Pet{}, err
	}
	if p.IsCritical {
		return p, ErrPetCritical
	}

	p.Stats, p.StatCarry = stats.ApplyExact(action, p.Stats, p.StatCarry, p.MaxHealthPenalty)
	p.LastInteraction = &now
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}

	s.record(ctx, p.ID, ownerActor(userID), typ, title, "")
	return p, nil
}

// Revive consume un ítem de recuperación y saca a la mascota de Critical.
func (s *Service) Revive(ctx context.Context, petID, userID string) (Pet, stats.RecoveryResult, error) {
	unlock := s.locks.Lock(petID)
	defer unlock()

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, stats.RecoveryResult{}, err
	}
	if err := authorize(p, userID); err != nil {
		return Pet{}, stats.RecoveryResult{}, err
	}

	now := s.now()
	p, _, err = s.refreshLocked(ctx, p, now)
	if err != nil {
		return Pet{}, stats.RecoveryResult{}, err
	}

	qty := 0
	if s.inventory != nil {
		qty, err = s.inventory.Quantity(ctx, userID, inventory.ItemRevivalPotion)
		if err != nil {
			return Pet{}, stats.RecoveryResult{}, err
		}
	}

	check := stats.CanUseRecoveryItem(p.IsCritical, qty)
	if !check.Allowed {
		if check.Reason == stats.ReasonNotCritical {
			return p, stats.RecoveryResult{}, ErrNotCritical
		}
		return p, stats.RecoveryResult{}, ErrNoRecoveryItems
	}

	if _, err := s.inventory.Consume(ctx, userID, inventory.ItemRevivalPotion); err != nil {
		if errors.Is(err, inventory.ErrInsufficient) {
			return p, stats.RecoveryResult{}, ErrNoRecoveryItems
		}
		return Pet{}, stats.RecoveryResult{}, err
	}

	res := stats.ApplyRecovery(p.Stats.Health, p.MaxHealthPenalty)
	p.Stats.Health = res.Health
	p.StatCarry = stats.Remainder{}
	p.MaxHealthPenalty = res.MaxHealthPenalty
	p.IsCritical = res.IsCritical
	p.NeglectStartedAt = nil
	p.LastInteraction = &now
	p.LastStatUpdate = now
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		// El ítem ya se consumió; queda en el log para reconciliar a mano.
		s.log.Error("revive not persisted after consuming item",
			zap.String("pet_id", p.ID), zap.String("user_id", userID), zap.Error(err))
		return Pet{}, stats.RecoveryResult{}, err
	}

	s.log.Info("pet revived", zap.String("pet_id", p.ID), zap.Int("max_health_penalty", p.MaxHealthPenalty))
	s.record(ctx, p.ID, ownerActor(userID), events.EventTypeRevived, "Revived", res.Message)
	return p, res, nil
}

// RefreshAll recalcula todas las mascotas. Un error en una mascota no corta la pasada;
// sólo la cancelación del contexto la interrumpe.
func (s *Service) RefreshAll(ctx context.Context) (SweepReport, error) {
	var (
		mu  sync.Mutex
		rep SweepReport
	)

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return rep, err
	}

	// Las fallas individuales no cortan la pasada; sólo la cancelación.
	var g errgroup.Group
	g.SetLimit(s.sweepConcurrency)
	for _, p := range all {
		p := p
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			_, out, err := s.refreshByID(ctx, p.ID)

			mu.Lock()
			defer mu.Unlock()
			rep.Scanned++
			if err != nil {
				rep.Failed++
				s.log.Warn("stat refresh failed", zap.String("pet_id", p.ID), zap.Error(err))
				return nil
			}
			if out.Saved {
				rep.Updated++
			}
			if out.EnteredCritical {
				rep.EnteredCritical++
			}
			return nil
		})
	}
	_ = g.Wait()

	return rep, ctx.Err()
}

// record no falla la operación principal: el timeline es secundario al estado de la mascota.
func (s *Service) record(ctx context.Context, petID string, actor events.Actor, typ events.EventType, title, notes string) {
	if s.events == nil {
		return
	}
	if _, err := s.events.Create(ctx, petID, actor, events.CreateInput{
		Type:       typ,
		OccurredAt: s.now(),
		Title:      title,
		Notes:      notes,
	}); err != nil {
		s.log.Warn("event not recorded", zap.String("pet_id", petID), zap.String("type", string(typ)), zap.Error(err))
	}
}

func ownerActor(userID string) events.Actor {
	return events.Actor{Type: events.ActorTypeOwnerUser, ID: userID}
}
