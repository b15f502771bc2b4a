package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"virtual-pet/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.PetEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_events (
			id, pet_id,
			type, occurred_at, recorded_at,
			title, notes,
			actor_type, actor_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.PetID,
		string(e.Type),
		e.OccurredAt,
		e.RecordedAt,
		e.Title,
		e.Notes,
		string(e.Actor.Type),
		e.Actor.ID,
	)
	if err != nil {
		return fmt.Errorf("insert pet event: %w", err)
	}
	return nil
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.PetEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	query, args := buildListQuery(petID, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.PetEvent, 0)
	for rows.Next() {
		var e events.PetEvent
		var typ, actorType string

		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&typ,
			&e.OccurredAt,
			&e.RecordedAt,
			&e.Title,
			&e.Notes,
			&actorType,
			&e.Actor.ID,
		); err != nil {
			return nil, err
		}

		e.Type = events.EventType(typ)
		e.Actor.Type = events.ActorType(actorType)

		out = append(out, e)
	}

	return out, rows.Err()
}

// buildListQuery arma el SELECT con placeholders numerados según los filtros presentes.
func buildListQuery(petID string, filter events.ListFilter) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id,
			type, occurred_at, recorded_at,
			title, notes,
			actor_type, actor_id
		FROM pet_events
		WHERE pet_id = $1`)

	args := []any{petID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en title + notes
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR notes ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = events.DefaultListLimit
	}
	if limit > events.MaxListLimit {
		limit = events.MaxListLimit
	}

	sb.WriteString(" ORDER BY occurred_at DESC, recorded_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	return sb.String(), args
}
