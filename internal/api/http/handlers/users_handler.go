package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/api/validation"
	"github.com/spec-kit/user-service/internal/service"
	"github.com/spec-kit/user-service/pkg/apperrors"
)

// UsersHandler exposes the user lifecycle endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Dados de entrada inválidos.", nil)
	}
	if err := validation.Validator.Struct(req); err != nil {
		return apperrors.NewValidation("Dados de entrada inválidos.", validation.FormatValidationErrors(err))
	}

	user, token, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SuccessWithToken(
		"Usuário criado com sucesso.",
		token,
		fiber.Map{"user": dto.NewUserResponse(user)},
	))
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Dados de entrada inválidos.", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidation("Por favor, forneça email e senha.", nil)
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessWithToken(
		"Login realizado com sucesso.",
		token,
		fiber.Map{"user": dto.NewUserResponse(user)},
	))
}

// List handles GET /users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(dto.Success(
		"Usuários recuperados com sucesso.",
		fiber.Map{"users": items},
	))
}

// Get handles GET /users/:uuid.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByUUID(c.Context(), c.Params("uuid"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(
		"Usuário recuperado com sucesso.",
		fiber.Map{"user": dto.NewUserResponse(user)},
	))
}

// Update handles PUT /users/:uuid.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Dados de entrada inválidos.", nil)
	}
	if req.Name == nil && req.Email == nil {
		return apperrors.NewValidation("Forneça pelo menos um campo para atualizar.", nil)
	}
	if err := validation.Validator.Struct(req); err != nil {
		return apperrors.NewValidation("Dados de entrada inválidos.", validation.FormatValidationErrors(err))
	}

	user, err := h.users.Update(c.Context(), c.Params("uuid"), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(
		"Usuário atualizado com sucesso.",
		fiber.Map{"user": dto.NewUserResponse(user)},
	))
}

// Delete handles DELETE /users/:uuid (admin only, soft delete).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.SoftDelete(c.Context(), c.Params("uuid")); err != nil {
		return err
	}
	return c.JSON(dto.Success("Usuário deletado com sucesso.", nil))
}

// Restore handles POST /users/:uuid/restore (admin only).
func (h *UsersHandler) Restore(c *fiber.Ctx) error {
	if err := h.users.Restore(c.Context(), c.Params("uuid")); err != nil {
		return err
	}
	return c.JSON(dto.Success("Usuário restaurado com sucesso.", nil))
}
