package handler

import (
	"strconv"

	"crm-console/internal/listview"
	"crm-console/internal/middleware"
	"crm-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ViewHandler struct {
	views service.ViewService
}

func NewViewHandler(views service.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

type toggleSortRequest struct {
	Key string `json:"key"`
}

// GetView renders one page of a list view
// GET /api/v1/views/:resource?search=&page=&sort=&dir=&refresh=&<filter>=
// Parameters left out keep the session's current value.
func (h *ViewHandler) GetView(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)
	args := c.Context().QueryArgs()

	req := service.ViewRequest{
		Refresh: c.QueryBool("refresh", false),
		Filters: map[string]string{},
	}
	if args.Has("search") {
		search := c.Query("search")
		req.Search = &search
	}
	if args.Has("page") {
		page, err := strconv.Atoi(c.Query("page"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid page"})
		}
		req.Page = &page
	}
	if args.Has("sort") {
		req.Sort = &listview.SortConfig{
			Key:       c.Query("sort"),
			Direction: listview.ParseDirection(c.Query("dir")),
		}
	}
	for _, field := range res.FilterFields {
		if args.Has(field) {
			req.Filters[field] = c.Query(field)
		}
	}

	page, err := h.views.Render(c.UserContext(), sess, res, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// ToggleSort flips the direction on the current key or sorts by a new key
// POST /api/v1/views/:resource/sort
func (h *ViewHandler) ToggleSort(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	var req toggleSortRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Key == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Sort key is required"})
	}

	page, err := h.views.ToggleSort(c.UserContext(), sess, res, req.Key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetRecords returns the full source collection, ignoring search, filters,
// sort and page. Exports read from here.
// GET /api/v1/views/:resource/records
func (h *ViewHandler) GetRecords(c *fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	res, _ := middleware.ResourceFrom(c)

	records, err := h.views.Records(c.UserContext(), sess, res)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":  records,
		"total": len(records),
	})
}
