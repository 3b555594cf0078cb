package Apis

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"AtlasHR/Attendance"
	"AtlasHR/Models"
)

// BiometricSync is the ingestion entry point mirroring the external device
// sync boundary. Duplicates are reported and dropped, never re-recorded.
func BiometricSync(c *fiber.Ctx) error {
	var input Attendance.PunchInput
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if len(input.RawPayload) == 0 {
		input.RawPayload = c.Body()
	}

	ingestor := Attendance.NewIngestor(Models.DB)
	record, err := ingestor.IngestPunch(input)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if kind := Attendance.KindOf(err); kind == Attendance.KindDuplicatePunch {
			// The sync client retries freely; a duplicate is a success from
			// its point of view.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status": "duplicate",
				"kind":   kind,
			})
		}
		log.Println("Punch ingestion failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Attendance synced",
		"log_id":  record.ID,
	})
}
