package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"cyco-backend/internal/middleware"
	"cyco-backend/internal/repository"
)

// LogStore covers one of the flat append-mostly collections: events, feedback,
// history, manage-subscriptions.
type LogStore interface {
	Insert(ctx context.Context, doc bson.M) (string, error)
	ListAll(ctx context.Context) ([]bson.M, error)
	UpdateByID(ctx context.Context, id string, patch bson.M) error
	DeleteByID(ctx context.Context, id string) error
}

// LogsHandler serves the same CRUD surface for each log collection.
type LogsHandler struct {
	Events        *LogRoutes
	Feedback      *LogRoutes
	History       *LogRoutes
	Subscriptions *LogRoutes
}

func NewLogsHandler(events, feedback, history, subscriptions LogStore) *LogsHandler {
	return &LogsHandler{
		Events:        &LogRoutes{store: events},
		Feedback:      &LogRoutes{store: feedback},
		History:       &LogRoutes{store: history},
		Subscriptions: &LogRoutes{store: subscriptions},
	}
}

type LogRoutes struct {
	store LogStore
}

func (l *LogRoutes) Create(c fiber.Ctx) error {
	var doc bson.M
	if err := c.Bind().JSON(&doc); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if len(doc) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "empty payload")
	}
	delete(doc, "_id")

	id, err := l.store.Insert(c.Context(), doc)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to save record")
	}
	return c.Status(fiber.StatusCreated).JSON(InsertedResponse{InsertedID: id})
}

func (l *LogRoutes) List(c fiber.Ctx) error {
	docs, err := l.store.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to list records")
	}
	return c.JSON(docs)
}

func (l *LogRoutes) Update(c fiber.Ctx) error {
	var patch bson.M
	if err := c.Bind().JSON(&patch); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if len(patch) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "empty patch")
	}

	err := l.store.UpdateByID(c.Context(), c.Params("id"), patch)
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Record not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to update record")
	}
	return c.JSON(MessageResponse{Message: "Record updated"})
}

func (l *LogRoutes) Delete(c fiber.Ctx) error {
	err := l.store.DeleteByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Record not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to delete record")
	}
	return c.JSON(MessageResponse{Message: "Record deleted"})
}
