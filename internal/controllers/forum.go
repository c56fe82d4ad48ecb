package controllers

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"cyco-backend/internal/middleware"
	"cyco-backend/internal/models"
	"cyco-backend/internal/repository"
)

// ForumStore covers the forum query collection.
type ForumStore interface {
	Insert(ctx context.Context, q *models.ForumQuery) (string, error)
	ListAll(ctx context.Context) ([]models.ForumQuery, error)
	FindByID(ctx context.Context, id string) (*models.ForumQuery, error)
	IncrementViews(ctx context.Context, id string) error
	CastVote(ctx context.Context, id, voter string, dir repository.VoteDirection) error
	AppendComment(ctx context.Context, id string, comment models.Comment) error
}

// ReportStore covers the query report collection.
type ReportStore interface {
	ExistsFor(ctx context.Context, queryID, reporter string) (bool, error)
	Insert(ctx context.Context, queryID, reporter, reason string) error
}

type ForumHandler struct {
	queries ForumStore
	reports ReportStore
}

func NewForumHandler(queries ForumStore, reports ReportStore) *ForumHandler {
	return &ForumHandler{queries: queries, reports: reports}
}

// Create handles POST /forumQueries.
func (h *ForumHandler) Create(c fiber.Ctx) error {
	var req CreateQueryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "title and author are required")
	}

	id, err := h.queries.Insert(c.Context(), &models.ForumQuery{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Upvotes:     []string{},
		Downvotes:   []string{},
		Comments:    []models.Comment{},
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to create query")
	}
	return c.Status(fiber.StatusCreated).JSON(InsertedResponse{InsertedID: id, Message: "Query created"})
}

// List handles GET /forumQueries.
func (h *ForumHandler) List(c fiber.Ctx) error {
	queries, err := h.queries.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to list queries")
	}
	return c.JSON(queries)
}

// Get handles GET /forumQueries/:id.
func (h *ForumHandler) Get(c fiber.Ctx) error {
	q, err := h.queries.FindByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to fetch query")
	}
	return c.JSON(q)
}

// IncrementViews handles PUT /forumQueries/:id.
func (h *ForumHandler) IncrementViews(c fiber.Ctx) error {
	err := h.queries.IncrementViews(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to update views")
	}
	return c.JSON(MessageResponse{Message: "View recorded"})
}

// Vote handles PUT /forumQueries/:id/vote. Repeating a vote in the same
// direction is a conflict; voting the opposite direction retracts the old vote
// in the same update.
func (h *ForumHandler) Vote(c fiber.Ctx) error {
	var req VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "voteType must be upvote or downvote and voter is required")
	}

	id := c.Params("id")
	q, err := h.queries.FindByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to cast vote")
	}

	dir := repository.VoteDirection(req.VoteType)
	already := q.Upvotes
	if dir == repository.Downvote {
		already = q.Downvotes
	}
	if slices.Contains(already, req.Voter) {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Already voted "+req.VoteType)
	}

	if err := h.queries.CastVote(c.Context(), id, req.Voter, dir); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to cast vote")
	}
	return c.JSON(MessageResponse{Message: "Vote recorded"})
}

// Comment handles POST /forumQueries/comments/:id. Comments are list-append;
// identical texts may repeat.
func (h *ForumHandler) Comment(c fiber.Ctx) error {
	var req CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "user and text are required")
	}

	err := h.queries.AppendComment(c.Context(), c.Params("id"), models.Comment{
		User:      req.User,
		Text:      req.Text,
		CreatedAt: time.Now(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to add comment")
	}
	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: "Comment added"})
}

// Report handles POST /report/query. A reporter can flag a given query once.
func (h *ForumHandler) Report(c fiber.Ctx) error {
	var req ReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "queryId and reporter are required")
	}

	if _, err := h.queries.FindByID(c.Context(), req.QueryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Query not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to report query")
	}

	exists, err := h.reports.ExistsFor(c.Context(), req.QueryID, req.Reporter)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to report query")
	}
	if exists {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Query already reported")
	}

	if err := h.reports.Insert(c.Context(), req.QueryID, req.Reporter, req.Reason); err != nil {
		// Unique (queryId, reporter) index backstops concurrent reports.
		if mongo.IsDuplicateKeyError(err) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.CodeConflict, "Query already reported")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to report query")
	}
	return c.Status(fiber.StatusCreated).JSON(MessageResponse{Message: "Report recorded"})
}
