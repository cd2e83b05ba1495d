package handlers

import (
	"teahouse/internal/middleware"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes registers the event routes.
func (h *EventHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	events := router.Group("/events")
	events.Get("/search", h.HandleSearchEvents)
	events.Get("/", h.HandleGetEvents)
	events.Get("/:id", h.HandleGetEvent)
	events.Post("/", auth, middleware.AdminRequired(), h.HandleCreateEvent)
	events.Put("/:id", auth, middleware.AdminRequired(), h.HandleUpdateEvent)
	events.Delete("/:id", auth, middleware.AdminRequired(), h.HandleDeleteEvent)
}

func (h *EventHandler) HandleGetEvents(c *fiber.Ctx) error {
	events, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (h *EventHandler) HandleGetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(event)
}

func (h *EventHandler) HandleSearchEvents(c *fiber.Ctx) error {
	term, err := searchTerm(c, "title")
	if err != nil {
		return err
	}
	events, err := h.service.SearchByTitle(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (h *EventHandler) HandleCreateEvent(c *fiber.Ctx) error {
	var in models.EventInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	event, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) HandleUpdateEvent(c *fiber.Ctx) error {
	var in models.EventInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	event, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(event)
}

func (h *EventHandler) HandleDeleteEvent(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "event")
}
