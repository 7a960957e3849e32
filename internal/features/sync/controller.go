package sync

import (
	"errors"
	"time"

	"attendance-sync/internal/dates"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Service Service
	Status  *StatusStore
}

func NewController(service Service, status *StatusStore) *Controller {
	return &Controller{
		Service: service,
		Status:  status,
	}
}

type manualSyncRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ManualSync godoc
func (ctrl *Controller) ManualSync(c *fiber.Ctx) error {
	var req manualSyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := ctrl.Service.Run(c.Context(), req.StartDate, req.EndDate)
	if errors.Is(err, ErrSyncInFlight) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	now := time.Now().UTC()
	ctrl.Status.Replace(Status{
		LastUpdated: &now,
		Type:        TriggerManual,
		Range:       &DateRange{Start: req.StartDate, End: req.EndDate},
	})

	return c.JSON(fiber.Map{
		"success":       true,
		"insertedCount": result.Inserted,
		"skippedCount":  result.Skipped,
		"lastUpdated":   now,
	})
}

// validateRange rejects bad manual requests before any I/O happens.
func validateRange(start, end string) error {
	if start == "" || end == "" {
		return errors.New("startDate and endDate are required")
	}
	startDay, err := dates.ParseISO(start)
	if err != nil {
		return errors.New("startDate must be YYYY-MM-DD")
	}
	endDay, err := dates.ParseISO(end)
	if err != nil {
		return errors.New("endDate must be YYYY-MM-DD")
	}
	if startDay.After(endDay) {
		return errors.New("startDate must not be after endDate")
	}
	return nil
}

// DeleteRange godoc
func (ctrl *Controller) DeleteRange(c *fiber.Ctx) error {
	// Deletion is not implemented yet. Respond explicitly rather than
	// reporting zero rows deleted as if the range was searched.
	return c.JSON(fiber.Map{
		"success": true,
		"deleted": 0,
		"message": "date-range deletion is not implemented",
	})
}

// SyncStatus godoc
func (ctrl *Controller) SyncStatus(c *fiber.Ctx) error {
	return c.JSON(ctrl.Status.Current())
}

// ListRuns godoc
func (ctrl *Controller) ListRuns(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 20))

	runs, err := ctrl.Service.ListRuns(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": runs,
	})
}
