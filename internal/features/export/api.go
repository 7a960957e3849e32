package export

import (
	"attendance-sync/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *Controller
}

func NewExportApi(controller *Controller) api.Route {
	return &ExportApi{
		controller: controller,
	}
}

// Setup registers the export route
func (h *ExportApi) Setup(app *fiber.App) {
	app.Get("/export", h.controller.Download)
}
