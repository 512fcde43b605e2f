package controllers

import (
	"strconv"

	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type CommitteeController struct {
	Service *services.CommitteeService
	Papers  *services.PaperService
}

func (h *CommitteeController) List(c *fiber.Ctx) error {
	committees, err := h.Service.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(committees)
}

func (h *CommitteeController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	committee, err := h.Service.Get(uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(committee)
}

func (h *CommitteeController) Create(c *fiber.Ctx) error {
	var req dto.CommitteeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	committee, err := h.Service.Create(req)
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "committee.created", fiber.Map{
		"committeeId": committee.ID,
		"name":        committee.Name,
	})
	return c.Status(fiber.StatusCreated).JSON(committee)
}

func (h *CommitteeController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	var req dto.CommitteeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	committee, err := h.Service.Update(uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "committee.updated", fiber.Map{
		"committeeId": committee.ID,
	})
	return c.JSON(committee)
}

func (h *CommitteeController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	if err := h.Service.Delete(uint(id)); err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "committee.deleted", fiber.Map{
		"committeeId": id,
	})
	return c.JSON(fiber.Map{"success": true})
}

// PaperCatalog returns the committee's papers with their aggregated
// grades and display states.
func (h *CommitteeController) PaperCatalog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	rows, err := h.Papers.ListByCommittee(uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(rows)
}
