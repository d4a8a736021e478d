package dashboard

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/finanzas/models"
)

// API is the part of the movement service the dashboard needs.
type API interface {
	ListMovements(ctx context.Context) ([]models.Movement, error)
	CreateMovement(ctx context.Context, req models.MovementRequest) (models.Movement, error)
	UpdateMovement(ctx context.Context, id int64, req models.MovementRequest) (models.Movement, error)
	DeleteMovement(ctx context.Context, id int64) error
}

// Controller applies mutations and reloads the whole collection after each
// one. It never retries.
type Controller struct {
	api API
}

func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Refresh fetches the collection. On failure the state is left as it was.
func (c *Controller) Refresh(ctx context.Context, s State) (State, error) {
	movements, err := c.api.ListMovements(ctx)
	if err != nil {
		return s, fmt.Errorf("load movements: %w", err)
	}
	return Loaded(s, movements), nil
}

// Save submits the open form. If the store call fails the pre-submit state,
// modal still open, is returned with the error.
func (c *Controller) Save(ctx context.Context, s State) (State, error) {
	next, m := Submit(s)
	if m.Op == OpNone {
		return next, nil
	}
	if err := c.apply(ctx, m); err != nil {
		return s, err
	}
	return c.Refresh(ctx, next)
}

// Remove deletes movement id and refetches. Viewers are ignored.
func (c *Controller) Remove(ctx context.Context, s State, id int64) (State, error) {
	next, m := Delete(s, id)
	if m.Op == OpNone {
		return next, nil
	}
	if err := c.apply(ctx, m); err != nil {
		return s, err
	}
	return c.Refresh(ctx, next)
}

func (c *Controller) apply(ctx context.Context, m Mutation) error {
	var err error
	switch m.Op {
	case OpCreate:
		_, err = c.api.CreateMovement(ctx, m.Request)
	case OpUpdate:
		_, err = c.api.UpdateMovement(ctx, m.ID, m.Request)
	case OpDelete:
		err = c.api.DeleteMovement(ctx, m.ID)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s movement: %w", m.Op, err)
	}
	return nil
}

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "none"
	}
}
