package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"virtual-pet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id, name,
	traits,
	health, hunger, happiness, energy,
	health_carry, hunger_carry, happiness_carry, energy_carry,
	last_stat_update, last_interaction_at, neglect_started_at,
	is_critical, max_health_penalty, timezone_offset_minutes,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		traitsParam(p.Traits),
		p.Stats.Health,
		p.Stats.Hunger,
		p.Stats.Happiness,
		p.Stats.Energy,
		p.StatCarry.Health,
		p.StatCarry.Hunger,
		p.StatCarry.Happiness,
		p.StatCarry.Energy,
		p.LastStatUpdate,
		toNullTime(p.LastInteraction),
		toNullTime(p.NeglectStartedAt),
		p.IsCritical,
		p.MaxHealthPenalty,
		p.TimezoneOffsetMinutes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			traits = $3,
			health = $4,
			hunger = $5,
			happiness = $6,
			energy = $7,
			health_carry = $8,
			hunger_carry = $9,
			happiness_carry = $10,
			energy_carry = $11,
			last_stat_update = $12,
			last_interaction_at = $13,
			neglect_started_at = $14,
			is_critical = $15,
			max_health_penalty = $16,
			timezone_offset_minutes = $17,
			updated_at = $18
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		traitsParam(p.Traits),
		p.Stats.Health,
		p.Stats.Hunger,
		p.Stats.Happiness,
		p.Stats.Energy,
		p.StatCarry.Health,
		p.StatCarry.Hunger,
		p.StatCarry.Happiness,
		p.StatCarry.Energy,
		p.LastStatUpdate,
		toNullTime(p.LastInteraction),
		toNullTime(p.NeglectStartedAt),
		p.IsCritical,
		p.MaxHealthPenalty,
		p.TimezoneOffsetMinutes,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("pet %s: %w", p.ID, pets.ErrNotFound)
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, fmt.Errorf("pet %s: %w", id, pets.ErrNotFound)
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	return r.list(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_user_id = $1 ORDER BY created_at ASC, id ASC`, ownerUserID)
}

// ListAll alimenta el sweep periódico.
func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at ASC, id ASC`)
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(row scanner) (pets.Pet, error) {
	var p pets.Pet
	var traitsBlob []byte
	var lastInteraction, neglectStartedAt sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&traitsBlob,
		&p.Stats.Health,
		&p.Stats.Hunger,
		&p.Stats.Happiness,
		&p.Stats.Energy,
		&p.StatCarry.Health,
		&p.StatCarry.Hunger,
		&p.StatCarry.Happiness,
		&p.StatCarry.Energy,
		&p.LastStatUpdate,
		&lastInteraction,
		&neglectStartedAt,
		&p.IsCritical,
		&p.MaxHealthPenalty,
		&p.TimezoneOffsetMinutes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	// El blob se entrega tal cual; validarlo es trabajo del loader de rasgos.
	p.Traits = traitsBlob
	p.LastInteraction = fromNullTime(lastInteraction)
	p.NeglectStartedAt = fromNullTime(neglectStartedAt)
	return p, nil
}

// traitsParam manda NULL para blobs vacíos; jsonb rechaza el string vacío.
func traitsParam(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
