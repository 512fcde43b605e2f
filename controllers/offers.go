package controllers

import (
	"strconv"

	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type OfferController struct {
	Service *services.OfferService
}

func (h *OfferController) List(c *fiber.Ctx) error {
	offers, err := h.Service.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(offers)
}

// Create registers a supervision offer for the calling teacher.
func (h *OfferController) Create(c *fiber.Ctx) error {
	var req dto.OfferInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	offer, err := h.Service.Create(currentUserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// Apply files the calling student's application for an offer.
func (h *OfferController) Apply(c *fiber.Ctx) error {
	var req dto.ApplicationInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	application, err := h.Service.Apply(currentUserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(application)
}

// Decide accepts or declines an application. Acceptance creates the
// student's paper and takes a seat on the offer.
func (h *OfferController) Decide(c *fiber.Ctx) error {
	applicationID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	application, err := h.Service.Decide(uint(applicationID), req.Accept)
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "application.decided", fiber.Map{
		"applicationId": application.ID,
		"accepted":      req.Accept,
	})
	return c.JSON(application)
}
