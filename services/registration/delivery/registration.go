package delivery

import (
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"registration/config"
	"registration/domain"
)

type registrationHandler struct {
	uc domain.RegistrationUseCase
}

func NewRegistrationHandler(app *fiber.App, useCase domain.RegistrationUseCase) {
	handler := &registrationHandler{
		uc: useCase,
	}

	// Legacy action-dispatch contract kept for the deployed form clients
	app.Get("/", handler.HandleGet)
	app.Post("/", handler.HandlePost)

	app.Get("/stats", handler.GetStats)
	app.Get("/societies", handler.GetSocieties)
}

// HandleGet serves the duplicate-check operation. Legacy contract: always
// HTTP 200, failures are signalled inside the payload.
func (rh *registrationHandler) HandleGet(c *fiber.Ctx) error {
	guest := "Guest"

	if c.Query("action") != "checkDuplicate" {
		config.PrintLogInfo(&guest, fiber.StatusOK, "HandleGet")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"error": "Invalid action. Use action=checkDuplicate with phone parameter.",
		})
	}

	result, err := rh.uc.CheckDuplicateUC(c.Context(), c.Query("phone"))
	if err != nil {
		config.PrintLogInfo(&guest, fiber.StatusOK, "CheckDuplicate")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"isDuplicate": false,
			"error":       "Failed to check duplicates: " + err.Error(),
		})
	}

	config.PrintLogInfo(&guest, fiber.StatusOK, "CheckDuplicate")
	return c.Status(fiber.StatusOK).JSON(result)
}

// HandlePost serves the submit operation. The boundary revalidates every
// field instead of trusting the client's shape.
func (rh *registrationHandler) HandlePost(c *fiber.Ctx) error {
	guest := "Guest"

	if c.FormValue("action") != "submit" {
		config.PrintLogInfo(&guest, fiber.StatusOK, "HandlePost")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid action. Use action=submit for form submissions.",
		})
	}

	req := domain.Registration{
		FullName:      strings.TrimSpace(c.FormValue("fullName")),
		Email:         strings.TrimSpace(c.FormValue("email")),
		Phone:         strings.TrimSpace(c.FormValue("phone")),
		HomeAddress:   strings.TrimSpace(c.FormValue("homeAddress")),
		Gender:        c.FormValue("gender"),
		DateOfBirth:   c.FormValue("dateOfBirth"),
		MaritalStatus: c.FormValue("maritalStatus"),
		Society:       strings.TrimSpace(c.FormValue("society")),
	}
	// The legacy client also sends a "timestamp" field; the store assigns
	// its own clock at append time, so it is ignored here.

	if violations := validateSubmission(&req); len(violations) > 0 {
		config.PrintLogInfo(&guest, fiber.StatusOK, "Submit")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   strings.Join(violations, "; "),
			"errors":  violations,
		})
	}

	if errList := rh.uc.SubmitUC(c.Context(), &req); errList != nil && len(*errList) > 0 {
		config.PrintLogInfo(&guest, fiber.StatusOK, "Submit")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to submit registration: " + strings.Join(*errList, "; "),
		})
	}

	config.PrintLogInfo(&guest, fiber.StatusOK, "Submit")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Registration submitted successfully!",
	})
}

// validateSubmission collects every violation before rejecting, matching
// the form's own all-at-once validation.
func validateSubmission(req *domain.Registration) []string {
	var violations []string

	if _, err := govalidator.ValidateStruct(req); err != nil {
		byField := govalidator.ErrorsByField(err)

		fields := make([]string, 0, len(byField))
		for field := range byField {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			violations = append(violations, byField[field])
		}
	}

	if req.Phone != "" && !domain.ValidPhone(req.Phone) {
		violations = append(violations, "Please enter a valid 11-digit phone number or 13-digit number with +234")
	}

	return violations
}

func (rh *registrationHandler) GetStats(c *fiber.Ctx) error {
	guest := "Guest"

	stats, err := rh.uc.StatsUC(c.Context())
	if err != nil {
		config.PrintLogInfo(&guest, fiber.StatusInternalServerError, "GetStats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to get registration statistics",
		})
	}

	config.PrintLogInfo(&guest, fiber.StatusOK, "GetStats")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Registration statistics retrieved successfully",
		"data":    stats,
	})
}

func (rh *registrationHandler) GetSocieties(c *fiber.Ctx) error {
	guest := "Guest"

	config.PrintLogInfo(&guest, fiber.StatusOK, "GetSocieties")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Societies retrieved successfully",
		"data":    domain.SocietyCatalog,
	})
}
