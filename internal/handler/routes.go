package handler

import (
	"crm-console/internal/middleware"
	"crm-console/internal/model"
	"crm-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Routes groups what the console API needs to mount its endpoints.
type Routes struct {
	Auth        *AuthHandler
	Views       *ViewHandler
	Records     *RecordHandler
	Permissions service.PermissionStore
	JWTSecret   []byte
}

// Mount registers every console endpoint under api (normally /api/v1).
func (r Routes) Mount(api fiber.Router) {
	protected := api.Group("", middleware.RequireSession(r.JWTSecret))

	// Session
	protected.Get("/permissions", r.Auth.GetPermissions)
	protected.Post("/permissions/refresh", r.Auth.RefreshPermissions)
	protected.Post("/auth/logout", r.Auth.Logout)

	// List views
	views := protected.Group("/views/:resource", middleware.ResolveResource())
	views.Get("", r.Views.GetView)
	views.Post("/sort", r.Views.ToggleSort)
	views.Get("/records", r.Views.GetRecords)

	// Mutations (row actions gated on the resource's category)
	records := protected.Group("/records/:resource", middleware.ResolveResource())
	records.Post("", r.Records.CreateRecord)
	records.Put("/:id", middleware.RequirePermission(r.Permissions, model.ActionEdit), r.Records.UpdateRecord)
	records.Delete("/:id", middleware.RequirePermission(r.Permissions, model.ActionDelete), r.Records.DeleteRecord)
	records.Put("/:id/assign", middleware.RequirePermission(r.Permissions, model.ActionEdit), r.Records.ReassignRecord)
}
