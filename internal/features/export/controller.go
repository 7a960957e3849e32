package export

import (
	"fmt"

	"attendance-sync/internal/dates"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Service Service
}

func NewController(service Service) *Controller {
	return &Controller{
		Service: service,
	}
}

// Download godoc
func (ctrl *Controller) Download(c *fiber.Ctx) error {
	start := c.Query("startDate")
	end := c.Query("endDate")

	if start == "" || end == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "startDate and endDate query parameters are required",
		})
	}
	startDay, err := dates.ParseISO(start)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "startDate must be YYYY-MM-DD",
		})
	}
	endDay, err := dates.ParseISO(end)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "endDate must be YYYY-MM-DD",
		})
	}
	if startDay.After(endDay) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "startDate must not be after endDate",
		})
	}

	data, filename, err := ctrl.Service.BuildWorkbook(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
