package controllers

import (
	"strconv"

	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"
	"github.com/haginus/bachelor-backend-sub001/services"

	"github.com/gofiber/fiber/v2"
)

type GradeController struct {
	Service *services.GradeService
}

// RecordPaperGrade lets a committee member file their score sheet for a
// paper of their committee.
func (h *GradeController) RecordPaperGrade(c *fiber.Ctx) error {
	paperID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	var req dto.PaperGradeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	grade, err := h.Service.RecordPaperGrade(currentUserID(c), uint(paperID), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(grade)
}

// PaperAverage returns the paper's authoritative average and display
// state (graded, pending or absent).
func (h *GradeController) PaperAverage(c *fiber.Ctx) error {
	paperID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	avg, state, err := h.Service.ComputePaperAverage(uint(paperID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"gradeAverage": avg, "gradeState": state})
}

// GradeSubmission records a written-exam grade (or its dispute outcome)
// for a submission.
func (h *GradeController) GradeSubmission(c *fiber.Ctx) error {
	submissionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}
	var req dto.WrittenExamGradeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	grade, err := h.Service.GradeSubmission(uint(submissionID), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(grade)
}

// WrittenExamGrade returns the grade a viewer is allowed to see: staff get
// the resolved final grade, students only what the session's disclosure
// flags permit.
func (h *GradeController) WrittenExamGrade(c *fiber.Ctx) error {
	submissionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid id"})
	}

	var submission models.Submission
	if err := h.Service.DB.Preload("Grade").First(&submission, submissionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "submission not found"})
	}
	if submission.Grade == nil {
		return c.JSON(fiber.Map{"grade": nil})
	}

	settings, err := h.Service.Session.GetSettings()
	if err != nil {
		return serviceError(c, err)
	}
	kind, _ := c.Locals("userKind").(string)
	privileged := kind != models.KindStudent
	if kind == models.KindStudent && submission.StudentID != currentUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "insufficient permissions"})
	}
	return c.JSON(fiber.Map{
		"grade": services.VisibleWrittenExamGrade(*submission.Grade, settings, privileged),
	})
}
