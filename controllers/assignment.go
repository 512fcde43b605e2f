package controllers

import (
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type AssignmentController struct {
	Service *services.AssignmentService
}

// AutoAssign runs the batch assignment over the whole pool of eligible
// papers and returns the per-row summary.
func (h *AssignmentController) AutoAssign(c *fiber.Ctx) error {
	result, err := h.Service.AutoAssignPapers()
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "papers.auto_assigned", fiber.Map{
		"processed": result.Processed,
		"updated":   result.Updated,
		"failed":    result.Failed,
	})
	return c.JSON(result)
}
