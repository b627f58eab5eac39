package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/scheduling"
	"github.com/abdelrahman-hamdy/itqan-platform-sub035/internal/service"
)

type ScheduleHandler struct {
	schedules service.ScheduleService
	loc       *time.Location
	validate  *validator.Validate
}

func NewScheduleHandler(schedules service.ScheduleService, loc *time.Location) *ScheduleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleHandler{
		schedules: schedules,
		loc:       loc,
		validate:  validator.New(),
	}
}

type PlanRequestBody struct {
	EntityType      string   `json:"entity_type" validate:"required,oneof=trial group_circle individual_circle academic_lesson interactive_course"`
	EntityID        string   `json:"entity_id" validate:"required,uuid"`
	Days            []string `json:"days" validate:"required,min=1,dive,oneof=saturday sunday monday tuesday wednesday thursday friday"`
	SessionCount    int      `json:"session_count" validate:"required,min=1"`
	StartDate       string   `json:"start_date,omitempty"`
	Time            string   `json:"time" validate:"required"`
	DurationMinutes int      `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=240"`
	Title           string   `json:"title,omitempty" validate:"max=150"`
}

// toPlanRequest converts the wire form into the service request. Dates and
// times are interpreted in the academy timezone.
func (h *ScheduleHandler) toPlanRequest(body PlanRequestBody) (service.PlanRequest, error) {
	entityID, err := uuid.Parse(body.EntityID)
	if err != nil {
		return service.PlanRequest{}, errors.New("invalid entity_id")
	}

	days := make([]time.Weekday, 0, len(body.Days))
	for _, name := range body.Days {
		d, ok := scheduling.ParseWeekday(name)
		if !ok {
			return service.PlanRequest{}, errors.New("invalid day name: " + name)
		}
		days = append(days, d)
	}

	tod, err := time.Parse("15:04", body.Time)
	if err != nil {
		return service.PlanRequest{}, errors.New("invalid time, expected HH:MM")
	}

	req := service.PlanRequest{
		EntityType:      service.EntityType(body.EntityType),
		EntityID:        entityID,
		Days:            days,
		SessionCount:    body.SessionCount,
		TimeHour:        tod.Hour(),
		TimeMinute:      tod.Minute(),
		DurationMinutes: body.DurationMinutes,
		Title:           body.Title,
	}
	if body.StartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", body.StartDate, h.loc)
		if err != nil {
			return service.PlanRequest{}, errors.New("invalid start_date, expected YYYY-MM-DD")
		}
		req.StartDate = &start
	}
	return req, nil
}

func (h *ScheduleHandler) ValidatePlan(c *fiber.Ctx) error {
	var body PlanRequestBody

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	req, err := h.toPlanRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.schedules.ValidatePlan(c.Context(), req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

func (h *ScheduleHandler) BulkSchedule(c *fiber.Ctx) error {
	var body PlanRequestBody

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	req, err := h.toPlanRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.schedules.BulkSchedule(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanInvalid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
		case errors.Is(err, service.ErrNoSchedulableSlot):
			return c.Status(fiber.StatusConflict).JSON(result)
		default:
			return h.serviceError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ScheduleHandler) CheckAvailability(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Query("teacher_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher_id"})
	}
	start, err := time.ParseInLocation("2006-01-02T15:04", c.Query("start"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start, expected YYYY-MM-DDTHH:MM"})
	}
	duration := c.QueryInt("duration_minutes", 60)

	check, err := h.schedules.CheckAvailability(c.Context(), teacherID, start, duration)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(check)
}

func (h *ScheduleHandler) Recommendations(c *fiber.Ctx) error {
	entityType, entityID, ok := h.entityQuery(c)
	if !ok {
		return nil
	}

	rec, err := h.schedules.Recommendations(c.Context(), entityType, entityID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *ScheduleHandler) SchedulingStatus(c *fiber.Ctx) error {
	entityType, entityID, ok := h.entityQuery(c)
	if !ok {
		return nil
	}

	status, err := h.schedules.SchedulingStatus(c.Context(), entityType, entityID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

// entityQuery reads the entity_type/entity_id query pair. On failure it has
// already written the 400 response.
func (h *ScheduleHandler) entityQuery(c *fiber.Ctx) (service.EntityType, uuid.UUID, bool) {
	entityType := service.EntityType(c.Query("entity_type"))
	switch entityType {
	case service.EntityTrial, service.EntityGroupCircle, service.EntityIndividualCircle,
		service.EntityAcademicLesson, service.EntityInteractiveCourse:
	default:
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entity_type"})
		return "", uuid.Nil, false
	}

	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entity_id"})
		return "", uuid.Nil, false
	}
	return entityType, entityID, true
}

func (h *ScheduleHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEntityNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownEntityType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, scheduling.ErrPastSchedule):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), "Schedule request failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
