package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"cyco-backend/internal/middleware"
	"cyco-backend/internal/models"
	"cyco-backend/internal/repository"
)

// WishlistStore covers the wishlist mutations on the user collection.
type WishlistStore interface {
	AddToWishlist(ctx context.Context, email string, movie models.MovieRef) (repository.WishlistResult, error)
	RemoveFromWishlist(ctx context.Context, email, movieID string) error
}

type WishlistHandler struct {
	users WishlistStore
}

func NewWishlistHandler(users WishlistStore) *WishlistHandler {
	return &WishlistHandler{users: users}
}

// Add handles POST /wishlist. Adding a movie already present is an idempotent
// no-op, not an error.
func (h *WishlistHandler) Add(c fiber.Ctx) error {
	var req WishlistAddRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if req.User.Email == "" || req.Movie.MovieID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "user email and movie id are required")
	}

	result, err := h.users.AddToWishlist(c.Context(), req.User.Email, req.Movie)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to update wishlist")
	}

	switch result {
	case repository.WishlistAdded:
		return c.JSON(MessageResponse{Message: "Movie added to wishlist"})
	case repository.WishlistAlreadyPresent:
		return c.JSON(MessageResponse{Message: "Already in wishlist"})
	default:
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "User not found")
	}
}

// Remove handles DELETE /wishlist/:email/:movieId.
func (h *WishlistHandler) Remove(c fiber.Ctx) error {
	err := h.users.RemoveFromWishlist(c.Context(), c.Params("email"), c.Params("movieId"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Movie not found in wishlist")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to update wishlist")
	}
	return c.JSON(MessageResponse{Message: "Movie removed from wishlist"})
}
