package handlers

import (
	"errors"

	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/models"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContentHandler struct {
	db     *gorm.DB
	access *services.AccessService
}

func NewContentHandler(db *gorm.DB, access *services.AccessService) *ContentHandler {
	return &ContentHandler{db: db, access: access}
}

// List returns active templates to callers with an active subscription.
func (h *ContentHandler) List(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	if !h.access.CheckAccess(id.Email) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Active subscription required",
		})
	}

	var templates []models.ContentTemplate
	if err := h.db.Where("active = ?", true).Order("category, key").Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch templates",
		})
	}

	return c.JSON(fiber.Map{"templates": templates})
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	if !h.access.CheckAccess(id.Email) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Active subscription required",
		})
	}

	var template models.ContentTemplate
	err = h.db.Where("key = ? AND active = ?", c.Params("key"), true).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Template not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch template",
		})
	}

	return c.JSON(template)
}

// Upsert creates or replaces a template (admin only).
func (h *ContentHandler) Upsert(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	var req dto.UpsertTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if msg := req.Validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: msg,
		})
	}

	updatedBy := ""
	if id, ok := c.Locals("identity").(*identity.Identity); ok {
		updatedBy = id.Email
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var template models.ContentTemplate
	err := h.db.Where("key = ?", key).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		template = models.ContentTemplate{
			Key:       key,
			Title:     req.Title,
			Body:      req.Body,
			Category:  req.Category,
			Active:    active,
			UpdatedBy: updatedBy,
		}
		if err := h.db.Create(&template).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create template",
			})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to query template",
		})
	} else {
		if err := h.db.Model(&template).Updates(map[string]interface{}{
			"title":      req.Title,
			"body":       req.Body,
			"category":   req.Category,
			"active":     active,
			"updated_by": updatedBy,
		}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update template",
			})
		}
	}

	return c.JSON(template)
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Key parameter is required",
		})
	}

	result := h.db.Where("key = ?", key).Delete(&models.ContentTemplate{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete template",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Template not found",
		})
	}

	return c.JSON(fiber.Map{"error": false, "message": "Template deleted"})
}
