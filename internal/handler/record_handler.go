package handler

import (
	"crm-console/internal/middleware"
	"crm-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecordHandler struct {
	gateway service.RecordGateway
}

func NewRecordHandler(gateway service.RecordGateway) *RecordHandler {
	return &RecordHandler{gateway: gateway}
}

type reassignRequest struct {
	OwnerID string `json:"owner_id"`
}

// CreateRecord handles record creation
// POST /api/v1/records/:resource
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	rec, err := h.gateway.Create(c.UserContext(), sess, res, c.Body())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Record created successfully",
		"data":    rec,
	})
}

// UpdateRecord applies a partial update
// PUT /api/v1/records/:resource/:id
// Requires edit on the resource's category (enforced by middleware)
func (h *RecordHandler) UpdateRecord(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	patch := map[string]interface{}{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	rec, err := h.gateway.Update(c.UserContext(), sess, res, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Record updated successfully",
		"data":    rec,
	})
}

// DeleteRecord handles record deletion
// DELETE /api/v1/records/:resource/:id
// Requires delete on the resource's category (enforced by middleware)
func (h *RecordHandler) DeleteRecord(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	if err := h.gateway.Delete(c.UserContext(), sess, res, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Record deleted successfully"})
}

// ReassignRecord moves a record to another owner
// PUT /api/v1/records/:resource/:id/assign
func (h *RecordHandler) ReassignRecord(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	var req reassignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	rec, err := h.gateway.Reassign(c.UserContext(), sess, res, c.Params("id"), req.OwnerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Record reassigned successfully",
		"data":    rec,
	})
}
