package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LovationAdmin/finanzas/events"
	"github.com/LovationAdmin/finanzas/models"
	"github.com/LovationAdmin/finanzas/utils"
)

const movementColumns = `id, concepto, monto, fecha, tipo`

type MovementService struct {
	db        *sql.DB
	publisher events.Publisher
}

// NewMovementService returns a service that announces every successful
// mutation to publisher. A nil publisher discards events.
func NewMovementService(db *sql.DB, publisher events.Publisher) *MovementService {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &MovementService{db: db, publisher: publisher}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(&m.ID, &m.Concept, &m.Amount, &m.Date, &m.Kind)
	return m, err
}

// List returns every movement, newest date first.
func (s *MovementService) List(ctx context.Context) ([]models.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos ORDER BY fecha DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	movements := []models.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}

	return movements, nil
}

// Get returns a single movement. The id is handed to the store unparsed.
func (s *MovementService) Get(ctx context.Context, id string) (models.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos WHERE id = $1`

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movement{}, ErrNotFound
	}
	if err != nil {
		return models.Movement{}, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Create inserts a movement exactly as requested. Values are not validated;
// missing ones are rejected by the store.
func (s *MovementService) Create(ctx context.Context, req models.MovementRequest) (models.Movement, error) {
	query := `
		INSERT INTO movimientos (concepto, monto, fecha, tipo)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + movementColumns

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, movementArgs(req)...))
	if err != nil {
		return models.Movement{}, fmt.Errorf("create movement: %w", err)
	}

	utils.LogMovementAction("created", m.ID, string(m.Kind), m.Amount)
	s.publish(ctx, events.TypeCreated, m.ID)
	return m, nil
}

// Update overwrites every field of the movement. Last write wins.
func (s *MovementService) Update(ctx context.Context, id string, req models.MovementRequest) (models.Movement, error) {
	query := `
		UPDATE movimientos
		SET concepto = $1, monto = $2, fecha = $3, tipo = $4
		WHERE id = $5
		RETURNING ` + movementColumns

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, append(movementArgs(req), id)...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movement{}, ErrNotFound
	}
	if err != nil {
		return models.Movement{}, fmt.Errorf("update movement: %w", err)
	}

	utils.LogMovementAction("updated", m.ID, string(m.Kind), m.Amount)
	s.publish(ctx, events.TypeUpdated, m.ID)
	return m, nil
}

// Delete removes the movement and returns it as it was.
func (s *MovementService) Delete(ctx context.Context, id string) (models.Movement, error) {
	query := `DELETE FROM movimientos WHERE id = $1 RETURNING ` + movementColumns

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movement{}, ErrNotFound
	}
	if err != nil {
		return models.Movement{}, fmt.Errorf("delete movement: %w", err)
	}

	utils.LogMovementAction("deleted", m.ID, string(m.Kind), m.Amount)
	s.publish(ctx, events.TypeDeleted, m.ID)
	return m, nil
}

// movementArgs turns the request into query arguments, nil fields becoming NULL.
func movementArgs(req models.MovementRequest) []any {
	var amount any
	if req.Amount.Valid {
		amount = req.Amount.Decimal.String()
	}
	return []any{nullable(req.Concept), amount, nullable(req.Date), nullable(req.Kind)}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func (s *MovementService) publish(ctx context.Context, t events.Type, id int64) {
	if err := s.publisher.Publish(ctx, events.NewMovementEvent(t, id)); err != nil {
		utils.SafeWarn("⚠️ Failed to publish %s event for movement %d: %v", t, id, err)
	}
}
