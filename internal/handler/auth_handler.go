package handler

import (
	"crm-console/internal/middleware"
	"crm-console/internal/model"
	"crm-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	permissions service.PermissionStore
	views       service.ViewService
}

func NewAuthHandler(permissions service.PermissionStore, views service.ViewService) *AuthHandler {
	return &AuthHandler{permissions: permissions, views: views}
}

func permissionBody(set model.PermissionSet) fiber.Map {
	return fiber.Map{
		"user_permissions": set,
		"codes":            set.Codes(),
	}
}

// GetPermissions returns the cached grants without calling the CRM API
// GET /api/v1/permissions
func (h *AuthHandler) GetPermissions(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	set := h.permissions.Get(c.UserContext(), sess.Key)
	return c.JSON(fiber.Map{"data": permissionBody(set)})
}

// RefreshPermissions fetches the grants from the CRM API. A failed fetch
// answers with an empty set.
// POST /api/v1/permissions/refresh
func (h *AuthHandler) RefreshPermissions(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	set := h.permissions.Fetch(c.UserContext(), sess)
	return c.JSON(fiber.Map{
		"message": "Permissions refreshed",
		"data":    permissionBody(set),
	})
}

// Logout drops the session's permissions, cached collections and view state
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	h.views.Forget(sess.Key)
	if err := h.permissions.Clear(c.UserContext(), sess.Key); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear stored permissions"})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
