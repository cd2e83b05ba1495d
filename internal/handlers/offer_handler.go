package handlers

import (
	"teahouse/internal/middleware"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OfferHandler handles HTTP requests for offers.
type OfferHandler struct {
	service *services.OfferService
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(service *services.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

// RegisterRoutes registers the offer routes.
func (h *OfferHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	offers := router.Group("/offers")
	offers.Get("/search", h.HandleSearchOffers)
	offers.Get("/", h.HandleGetOffers)
	offers.Get("/:id", h.HandleGetOffer)
	offers.Post("/", auth, middleware.AdminRequired(), h.HandleCreateOffer)
	offers.Put("/:id", auth, middleware.AdminRequired(), h.HandleUpdateOffer)
	offers.Delete("/:id", auth, middleware.AdminRequired(), h.HandleDeleteOffer)
}

func (h *OfferHandler) HandleGetOffers(c *fiber.Ctx) error {
	offers, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(offers)
}

func (h *OfferHandler) HandleGetOffer(c *fiber.Ctx) error {
	offer, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(offer)
}

// HandleSearchOffers handles GET /offers/search?title=.
func (h *OfferHandler) HandleSearchOffers(c *fiber.Ctx) error {
	term, err := searchTerm(c, "title")
	if err != nil {
		return err
	}
	offers, err := h.service.SearchByTitle(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(offers)
}

func (h *OfferHandler) HandleCreateOffer(c *fiber.Ctx) error {
	var in models.OfferInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	offer, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

func (h *OfferHandler) HandleUpdateOffer(c *fiber.Ctx) error {
	var in models.OfferInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	offer, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(offer)
}

func (h *OfferHandler) HandleDeleteOffer(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "offer")
}
