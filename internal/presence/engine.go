// Package presence keeps a user's current-court pointer and a court's
// occupancy fields mutually consistent across check-in, check-out, and
// privacy toggles.
//
// Consistency is best-effort. The pointer write and the occupancy write go
// to different documents with no transaction between them, so a crash or a
// conflicting concurrent update can leave the counter off by one. The
// clamp-to-zero pass after check-out is a repair step, not a guarantee.
package presence

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/courtsideapp/courtside/internal/database"
	"github.com/courtsideapp/courtside/internal/models"
)

// Engine runs the presence state transitions against the user and court
// stores it was constructed with.
type Engine struct {
	users  database.UserStore
	courts database.CourtStore
	log    *logrus.Logger
}

// NewEngine constructs an Engine.
func NewEngine(users database.UserStore, courts database.CourtStore, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{users: users, courts: courts, log: log}
}

// CheckIn moves user onto the target court, checking them out of any court
// they currently occupy first. Returns the court's updated player count.
//
// Private users never touch the occupancy fields; their pointer still moves.
func (e *Engine) CheckIn(ctx context.Context, user *models.User, courtID primitive.ObjectID) (int, error) {
	if user.CurrentCourtID != nil {
		if _, err := e.CheckOut(ctx, user, *user.CurrentCourtID); err != nil {
			return 0, fmt.Errorf("failed to check out of previous court: %w", err)
		}
	}

	if _, err := e.courts.Get(ctx, courtID); err != nil {
		return 0, err
	}

	if err := e.users.SetCurrentCourt(ctx, user.ID, &courtID); err != nil {
		return 0, fmt.Errorf("failed to set current court: %w", err)
	}
	user.CurrentCourtID = &courtID

	if user.IsPublic {
		if err := e.courts.AddOccupant(ctx, courtID, user.ID); err != nil {
			return 0, fmt.Errorf("failed to add occupant: %w", err)
		}
	}

	updated, err := e.courts.Get(ctx, courtID)
	if err != nil {
		return 0, err
	}
	return updated.CurrentPlayers, nil
}

// CheckOut clears the user's pointer unconditionally, then, for public
// users, removes them from the occupant set, decrements the counter, and
// clamps it at zero. Returns the post-clamp count, or zero when the court no
// longer exists.
func (e *Engine) CheckOut(ctx context.Context, user *models.User, courtID primitive.ObjectID) (int, error) {
	if err := e.users.SetCurrentCourt(ctx, user.ID, nil); err != nil {
		return 0, fmt.Errorf("failed to clear current court: %w", err)
	}
	user.CurrentCourtID = nil

	if user.IsPublic {
		if err := e.courts.RemoveOccupant(ctx, courtID, user.ID); err != nil {
			return 0, fmt.Errorf("failed to remove occupant: %w", err)
		}
		if err := e.courts.ClampFloor(ctx, courtID); err != nil {
			return 0, fmt.Errorf("failed to clamp player count: %w", err)
		}
	}

	updated, err := e.courts.Get(ctx, courtID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return updated.CurrentPlayers, nil
}

// TogglePrivacy flips the user's visibility flag. When the user occupies a
// court, going private removes them from its occupancy and going public adds
// them. Returns the new flag value.
func (e *Engine) TogglePrivacy(ctx context.Context, user *models.User) (bool, error) {
	newPublic := !user.IsPublic

	if err := e.users.SetPublic(ctx, user.ID, newPublic); err != nil {
		return user.IsPublic, fmt.Errorf("failed to update privacy: %w", err)
	}

	if user.CurrentCourtID != nil {
		courtID := *user.CurrentCourtID
		if newPublic {
			if err := e.courts.AddOccupant(ctx, courtID, user.ID); err != nil {
				return newPublic, fmt.Errorf("failed to add occupant: %w", err)
			}
		} else {
			if err := e.courts.RemoveOccupant(ctx, courtID, user.ID); err != nil {
				return newPublic, fmt.Errorf("failed to remove occupant: %w", err)
			}
		}
	}

	user.IsPublic = newPublic
	return newPublic, nil
}
