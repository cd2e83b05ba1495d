package handlers

import (
	"teahouse/internal/middleware"
	"teahouse/internal/models"
	"teahouse/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the user routes. Registration is public, listing and
// lookups are admin only, and users may update or delete their own account.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	users := router.Group("/users")
	users.Post("/", h.HandleCreateUser)
	users.Get("/", auth, middleware.AdminRequired(), h.HandleGetUsers)
	users.Get("/search", auth, middleware.AdminRequired(), h.HandleSearchUsers)
	users.Get("/email/:email", auth, middleware.AdminRequired(), h.HandleGetUserByEmail)
	users.Get("/:id", auth, middleware.AdminRequired(), h.HandleGetUser)
	self := middleware.SelfOrAdmin("id", h.service)
	users.Put("/:id", auth, self, h.HandleUpdateUser)
	users.Delete("/:id", auth, self, h.HandleDeleteUser)
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleGetUserByEmail(c *fiber.Ctx) error {
	user, err := h.service.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleSearchUsers handles GET /users/search?name=.
func (h *UserHandler) HandleSearchUsers(c *fiber.Ctx) error {
	term, err := searchTerm(c, "name")
	if err != nil {
		return err
	}
	users, err := h.service.SearchByName(c.UserContext(), term)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// HandleCreateUser registers a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser applies a partial update. Only admins may change roles.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if claims, ok := middleware.ClaimsFrom(c); ok && !claims.IsAdmin() {
		in.Role = nil
		in.AccountEnabled = nil
	}
	user, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return deleted(c, "user")
}
