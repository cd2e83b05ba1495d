package handlers

import (
	"teahouse/internal/middleware"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	service *services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers the reservation routes. Every route needs a token;
// writes need an admin one.
func (h *ReservationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	reservations := router.Group("/reservations", auth)
	reservations.Get("/search", h.HandleSearchReservations)
	reservations.Get("/", h.HandleGetReservations)
	reservations.Get("/:id", h.HandleGetReservation)
	reservations.Post("/", middleware.AdminRequired(), h.HandleCreateReservation)
	reservations.Put("/:id", middleware.AdminRequired(), h.HandleUpdateReservation)
	reservations.Delete("/:id", middleware.AdminRequired(), h.HandleDeleteReservation)
}

// HandleGetReservations retrieves all reservations.
func (h *ReservationHandler) HandleGetReservations(c *fiber.Ctx) error {
	reservations, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reservations)
}

// HandleGetReservation retrieves a single reservation by storage key or logical id.
func (h *ReservationHandler) HandleGetReservation(c *fiber.Ctx) error {
	reservation, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(reservation)
}

// HandleSearchReservations handles GET /reservations/search?email=.
func (h *ReservationHandler) HandleSearchReservations(c *fiber.Ctx) error {
	term, err := searchTerm(c, "email")
	if err != nil {
		return err
	}
	reservations, err := h.service.SearchByEmail(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(reservations)
}

// HandleCreateReservation creates a new reservation.
func (h *ReservationHandler) HandleCreateReservation(c *fiber.Ctx) error {
	var in models.ReservationInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	reservation, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// HandleUpdateReservation applies a partial update.
func (h *ReservationHandler) HandleUpdateReservation(c *fiber.Ctx) error {
	var in models.ReservationInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	reservation, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(reservation)
}

// HandleDeleteReservation deletes a reservation.
func (h *ReservationHandler) HandleDeleteReservation(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "reservation")
}
