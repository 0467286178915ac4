package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/service"
	"github.com/sefazor/recipebook-backend/pkg/validator"
)

type TagHandler struct {
	tagService *service.TagService
	validator  *validator.Validator
}

func NewTagHandler(tagService *service.TagService, validator *validator.Validator) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  validator,
	}
}

func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tagService.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(tags, "Tags retrieved successfully"))
}

func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	tagID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tag ID"))
	}

	tag, err := h.tagService.Get(c.Context(), uint(tagID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(models.SuccessResponse(tag, "Tag retrieved successfully"))
}

func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	if !permission.ReadOpenWriteAdminOnly(c.Method(), principalFromCtx(c)) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(service.ErrForbidden.Error()))
	}

	var req models.TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(validator.FieldErrors(err)))
	}

	tag, err := h.tagService.Create(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(tag, "Tag created successfully"))
}

func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	if !permission.ReadOpenWriteAdminOnly(c.Method(), principalFromCtx(c)) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(service.ErrForbidden.Error()))
	}

	tagID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid tag ID"))
	}

	if err := h.tagService.Delete(c.Context(), uint(tagID)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
