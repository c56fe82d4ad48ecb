package controllers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"cyco-backend/internal/middleware"
	"cyco-backend/internal/models"
	"cyco-backend/internal/repository"
	"cyco-backend/internal/token"
)

var validate = validator.New()

const bcryptCost = 14

// UserStore is the slice of the user repository the auth handlers need.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]models.User, error)
	GrantAdmin(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
}

type UserHandler struct {
	users  UserStore
	tokens *token.Service
}

func NewUserHandler(users UserStore, tokens *token.Service) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// Register handles POST /register. Duplicate emails get 409; passwords are
// stored as bcrypt hashes only.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "username, email and password are required")
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	exists, err := h.users.ExistsByEmail(c.Context(), req.Email)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to register user")
	}
	if exists {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to register user")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
		PhotoURL: req.PhotoURL,
		Wishlist: []models.MovieRef{},
	}
	if err := h.users.Insert(c.Context(), user); err != nil {
		// The unique email index closes the check-then-insert race.
		if mongo.IsDuplicateKeyError(err) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Email already registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /jwt. The password is verified against the stored hash
// before any token is signed.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "email and password are required")
	}

	user, err := h.users.FindByEmail(c.Context(), req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "User not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "could not login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "Incorrect password")
	}

	signed, err := h.tokens.Issue(user.Email)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "could not login")
	}

	return c.JSON(TokenResponse{Token: signed})
}

// GetUser handles GET /user/:email.
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	user, err := h.users.FindByEmail(c.Context(), c.Params("email"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "User not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to fetch user")
	}
	return c.JSON(user)
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to list users")
	}
	return c.JSON(users)
}

// IsAdmin handles GET /users/admin/:email. A caller asking about someone else's
// email gets admin=false rather than an error.
func (h *UserHandler) IsAdmin(c fiber.Ctx) error {
	email := c.Params("email")
	if middleware.AuthedEmail(c) != email {
		return c.JSON(AdminCheckResponse{Admin: false})
	}

	user, err := h.users.FindByEmail(c.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(AdminCheckResponse{Admin: false})
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to check role")
	}
	return c.JSON(AdminCheckResponse{Admin: user.Role == models.RoleAdmin})
}

// GrantAdmin handles PATCH /users/admin/:id.
func (h *UserHandler) GrantAdmin(c fiber.Ctx) error {
	err := h.users.GrantAdmin(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "User not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to update role")
	}
	return c.JSON(MessageResponse{Message: "User promoted to admin"})
}

// DeleteUser handles DELETE /users/:id.
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	err := h.users.DeleteByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "User not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to delete user")
	}
	return c.JSON(MessageResponse{Message: "User deleted"})
}
