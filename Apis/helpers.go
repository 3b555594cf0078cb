package Apis

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"AtlasHR/Attendance"
	"AtlasHR/Payroll"
)

// ParseDate accepts the date formats clients actually send.
func ParseDate(value string) (time.Time, error) {
	layouts := []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return Attendance.DateOnly(t), nil
		}
	}
	return time.Time{}, err
}

// engineErrorResponse maps a typed engine error to an HTTP response carrying
// the stable kind, so upstream callers can branch without parsing messages.
func engineErrorResponse(c *fiber.Ctx, err error) error {
	if kind := Attendance.KindOf(err); kind != "" {
		return c.Status(attendanceStatus(kind)).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  kind,
		})
	}
	if kind := Payroll.KindOf(err); kind != "" {
		return c.Status(payrollStatus(kind)).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  kind,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func attendanceStatus(kind Attendance.Kind) int {
	switch kind {
	case Attendance.KindEmployeeNotFound:
		return fiber.StatusNotFound
	case Attendance.KindDuplicatePunch:
		return fiber.StatusConflict
	case Attendance.KindAmbiguousPunchSequence, Attendance.KindNoShiftConfigured:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func payrollStatus(kind Payroll.Kind) int {
	switch kind {
	case Payroll.KindEmployeeNotFound:
		return fiber.StatusNotFound
	case Payroll.KindSlipLocked, Payroll.KindInvalidStatusTransition:
		return fiber.StatusConflict
	case Payroll.KindIncompleteAttendance, Payroll.KindCyclicComponentReference:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
