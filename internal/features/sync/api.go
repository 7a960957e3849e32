package sync

import (
	"attendance-sync/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *Controller
}

func NewSyncApi(controller *Controller) api.Route {
	return &SyncApi{
		controller: controller,
	}
}

// Setup registers all sync routes
func (h *SyncApi) Setup(app *fiber.App) {
	app.Post("/getdays", h.controller.ManualSync)
	app.Delete("/delete-date-range", h.controller.DeleteRange)
	app.Get("/sync-status", h.controller.SyncStatus)
	app.Get("/sync-runs", h.controller.ListRuns)
}
