package handlers

import (
	"teahouse/internal/middleware"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for tea and craft products.
type ProductHandler struct {
	teas   *services.TeaProductService
	crafts *services.CraftProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(teas *services.TeaProductService, crafts *services.CraftProductService) *ProductHandler {
	return &ProductHandler{teas: teas, crafts: crafts}
}

// RegisterRoutes registers the product routes. Reads are public, writes need an
// admin token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := []fiber.Handler{auth, middleware.AdminRequired()}

	teas := router.Group("/products/teas")
	teas.Get("/search", h.HandleSearchTeas)
	teas.Get("/", h.HandleGetTeas)
	teas.Get("/:id", h.HandleGetTea)
	teas.Post("/", append(admin, h.HandleCreateTea)...)
	teas.Put("/:id", append(admin, h.HandleUpdateTea)...)
	teas.Delete("/:id", append(admin, h.HandleDeleteTea)...)

	crafts := router.Group("/products/crafts")
	crafts.Get("/search", h.HandleSearchCrafts)
	crafts.Get("/", h.HandleGetCrafts)
	crafts.Get("/:id", h.HandleGetCraft)
	crafts.Post("/", append(admin, h.HandleCreateCraft)...)
	crafts.Put("/:id", append(admin, h.HandleUpdateCraft)...)
	crafts.Delete("/:id", append(admin, h.HandleDeleteCraft)...)
}

func (h *ProductHandler) HandleGetTeas(c *fiber.Ctx) error {
	teas, err := h.teas.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(teas)
}

func (h *ProductHandler) HandleGetTea(c *fiber.Ctx) error {
	tea, err := h.teas.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(tea)
}

// HandleSearchTeas handles GET /products/teas/search?name=.
func (h *ProductHandler) HandleSearchTeas(c *fiber.Ctx) error {
	term, err := searchTerm(c, "name")
	if err != nil {
		return err
	}
	teas, err := h.teas.SearchByName(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(teas)
}

func (h *ProductHandler) HandleCreateTea(c *fiber.Ctx) error {
	var in models.TeaProductInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tea, err := h.teas.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tea)
}

func (h *ProductHandler) HandleUpdateTea(c *fiber.Ctx) error {
	var in models.TeaProductInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tea, err := h.teas.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(tea)
}

func (h *ProductHandler) HandleDeleteTea(c *fiber.Ctx) error {
	if err := h.teas.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "tea product")
}

func (h *ProductHandler) HandleGetCrafts(c *fiber.Ctx) error {
	crafts, err := h.crafts.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(crafts)
}

func (h *ProductHandler) HandleGetCraft(c *fiber.Ctx) error {
	craft, err := h.crafts.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(craft)
}

// HandleSearchCrafts handles GET /products/crafts/search?name=.
func (h *ProductHandler) HandleSearchCrafts(c *fiber.Ctx) error {
	term, err := searchTerm(c, "name")
	if err != nil {
		return err
	}
	crafts, err := h.crafts.SearchByName(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(crafts)
}

func (h *ProductHandler) HandleCreateCraft(c *fiber.Ctx) error {
	var in models.CraftProductInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	craft, err := h.crafts.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(craft)
}

func (h *ProductHandler) HandleUpdateCraft(c *fiber.Ctx) error {
	var in models.CraftProductInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	craft, err := h.crafts.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(craft)
}

func (h *ProductHandler) HandleDeleteCraft(c *fiber.Ctx) error {
	if err := h.crafts.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "craft product")
}
