package inventory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/session"
)

// CreateHouseInput describes a new House.
type CreateHouseInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Houses lists, creates and selects the user's Houses.
type Houses struct {
	api      remote.API
	session  *session.Session
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHouses creates a Houses directory.
func NewHouses(api remote.API, sess *session.Session, logger *slog.Logger) *Houses {
	if logger == nil {
		logger = slog.Default()
	}
	return &Houses{api: api, session: sess, validate: newValidator(), logger: logger}
}

// List returns the user's Houses.
func (h *Houses) List(ctx context.Context) ([]models.House, error) {
	if _, err := h.session.Token(ctx); err != nil {
		return nil, err
	}
	houses, err := h.api.Houses(ctx)
	if err != nil {
		h.logger.Error("Failed to list houses", "error", err)
		return nil, err
	}
	return houses, nil
}

// Create creates a House. Its kitchen is created later, on first use.
func (h *Houses) Create(ctx context.Context, in CreateHouseInput) (*models.House, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := h.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if _, err := h.session.Token(ctx); err != nil {
		return nil, err
	}

	house, err := h.api.CreateHouse(ctx, remote.CreateHouseInput{Name: in.Name, Description: in.Description})
	if err != nil {
		h.logger.Error("Failed to create house", "name", in.Name, "error", err)
		return nil, err
	}
	h.logger.Info("House created", "house_id", house.ID, "name", house.Name)
	return house, nil
}

// Select makes house the current House.
func (h *Houses) Select(ctx context.Context, house models.House) error {
	if strings.TrimSpace(house.ID) == "" || strings.TrimSpace(house.Name) == "" {
		return apperr.Validation("house", "id and name are required")
	}
	if err := h.session.SelectHouse(ctx, house.ID, house.Name); err != nil {
		return err
	}
	h.logger.Info("House selected", "house_id", house.ID, "name", house.Name)
	return nil
}

// SelectByID looks house id up among the user's Houses and selects it.
func (h *Houses) SelectByID(ctx context.Context, id string) (*models.House, error) {
	houses, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range houses {
		if houses[i].ID == id {
			if err := h.Select(ctx, houses[i]); err != nil {
				return nil, err
			}
			return &houses[i], nil
		}
	}
	return nil, &apperr.RemoteError{Op: remote.OpHouses, Code: apperr.CodeNotFound, Message: "house " + id + " not found"}
}

// Current returns the selected House; ok is false when none is selected.
func (h *Houses) Current(ctx context.Context) (session.SelectedHouse, bool, error) {
	return h.session.SelectedHouse(ctx)
}
