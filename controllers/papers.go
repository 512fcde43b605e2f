package controllers

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/haginus/bachelor-backend-sub001/config"
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaperController struct {
	Service *services.PaperService
}

// MyPaper returns the calling student's paper.
func (h *PaperController) MyPaper(c *fiber.Ctx) error {
	paper, err := h.Service.GetByStudent(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(paper)
}

// Submit formally hands in the calling student's paper.
func (h *PaperController) Submit(c *fiber.Ctx) error {
	paper, err := h.Service.Submit(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(paper)
}

func (h *PaperController) Unsubmit(c *fiber.Ctx) error {
	paper, err := h.Service.Unsubmit(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(paper)
}

// Review records the staff verdict on a submitted paper.
func (h *PaperController) Review(c *fiber.Ctx) error {
	paperID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	var req dto.PaperReviewInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}
	paper, err := h.Service.Review(uint(paperID), req)
	if err != nil {
		return serviceError(c, err)
	}
	services.LogActivity(h.Service.DB, currentUserID(c), "paper.reviewed", fiber.Map{
		"paperId": paper.ID,
		"isValid": req.IsValid,
	})
	return c.JSON(paper)
}

// UploadDocument stores one uploaded file for the calling student's paper.
// Gated by the paper-file window; the stored name is randomized, only the
// record keeps the logical name.
func (h *PaperController) UploadDocument(c *fiber.Ctx) error {
	if !h.Service.Session.CanUploadPaperFiles() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "file submission is closed in the current session"})
	}
	paper, err := h.Service.GetByStudent(currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "missing file"})
	}
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "missing document name"})
	}

	dir := filepath.Join(config.StoragePath, strconv.Itoa(int(paper.ID)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "storage error"})
	}
	storedPath := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, storedPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "storage error"})
	}

	document := models.Document{
		PaperID:      paper.ID,
		Name:         name,
		Category:     "paper_files",
		Type:         "copy",
		MimeType:     file.Header.Get("Content-Type"),
		FilePath:     storedPath,
		UploadedByID: currentUserID(c),
	}
	if err := h.Service.DB.Create(&document).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "could not record document"})
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}
