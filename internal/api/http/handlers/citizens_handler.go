package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dinhviettung/citizen-registry/internal/api/dto"
	"github.com/dinhviettung/citizen-registry/internal/i18n"
	"github.com/dinhviettung/citizen-registry/internal/service"
	apperrors "github.com/dinhviettung/citizen-registry/pkg/util"
)

// CitizensHandler exposes the citizen registry operations.
type CitizensHandler struct {
	citizens *service.CitizenService
	messages *i18n.Translator
}

// NewCitizensHandler constructs handler.
func NewCitizensHandler(citizens *service.CitizenService, messages *i18n.Translator) *CitizensHandler {
	return &CitizensHandler{citizens: citizens, messages: messages}
}

// Add handles POST /api/citizens.
func (h *CitizensHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCitizenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest(i18n.KeyInvalidPayload)
	}

	record, err := h.citizens.Add(c.UserContext(), service.AddCitizenInput{
		NationalID:        req.NationalID,
		FullName:          req.FullName,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		AreaName:          req.AreaName,
		AreaType:          req.AreaType,
		HouseholdAddress:  req.HouseholdAddress,
		IsHead:            req.IsHead,
		HasCriminalRecord: req.HasCriminalRecord,
		SetWanted:         req.SetWanted,
		SetQuanChe:        req.SetQuanChe,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AddCitizenResponse{
		Message: h.messages.T(i18n.KeyCitizenAdded),
		Data:    record,
	})
}

// Search handles GET /api/citizens/:nationalId.
func (h *CitizensHandler) Search(c *fiber.Ctx) error {
	record, err := h.citizens.Search(c.UserContext(), c.Params("nationalId"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Delete handles DELETE /api/citizens/:nationalId.
func (h *CitizensHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.citizens.Delete(c.UserContext(), c.Params("nationalId"))
	if err != nil {
		return err
	}

	if !outcome.Deleted {
		return c.JSON(dto.DeleteCitizenResponse{
			Message: h.messages.T(i18n.KeyCitizenDeleteHandled),
			Success: true,
		})
	}
	return c.JSON(dto.DeleteCitizenResponse{
		Message: h.messages.T(i18n.KeyCitizenDeleted),
		Meta:    outcome.Meta,
	})
}
