package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"cyco-backend/internal/middleware"
	"cyco-backend/internal/repository"
	"cyco-backend/internal/storage"
)

// CatalogStore covers one catalog collection. Item payloads are uploader-shaped
// and passed through untouched.
type CatalogStore interface {
	Insert(ctx context.Context, doc bson.M) (string, error)
	ListAll(ctx context.Context) ([]bson.M, error)
	DeleteByID(ctx context.Context, id string) error
}

// MediaStore stores poster images and exposes their public URLs.
type MediaStore interface {
	Upload(ctx context.Context, filename string, src io.Reader, size int64, mimeType string) error
	Delete(ctx context.Context, filename string) error
	URL(filename string) string
}

type CatalogHandler struct {
	movies CatalogStore
	series CatalogStore
	liveTV CatalogStore
	media  MediaStore
}

func NewCatalogHandler(movies, series, liveTV CatalogStore, media MediaStore) *CatalogHandler {
	return &CatalogHandler{movies: movies, series: series, liveTV: liveTV, media: media}
}

func (h *CatalogHandler) ListMovies(c fiber.Ctx) error { return h.list(c, h.movies) }
func (h *CatalogHandler) ListSeries(c fiber.Ctx) error { return h.list(c, h.series) }
func (h *CatalogHandler) ListLiveTV(c fiber.Ctx) error { return h.list(c, h.liveTV) }

func (h *CatalogHandler) CreateMovie(c fiber.Ctx) error  { return h.create(c, h.movies) }
func (h *CatalogHandler) CreateLiveTV(c fiber.Ctx) error { return h.create(c, h.liveTV) }

func (h *CatalogHandler) DeleteMovie(c fiber.Ctx) error  { return h.delete(c, h.movies) }
func (h *CatalogHandler) DeleteLiveTV(c fiber.Ctx) error { return h.delete(c, h.liveTV) }

func (h *CatalogHandler) list(c fiber.Ctx, store CatalogStore) error {
	items, err := store.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to list catalog")
	}
	return c.JSON(items)
}

func (h *CatalogHandler) create(c fiber.Ctx, store CatalogStore) error {
	var doc bson.M
	if err := c.Bind().JSON(&doc); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
	}
	if len(doc) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "empty item payload")
	}
	delete(doc, "_id")

	id, err := store.Insert(c.Context(), doc)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to save item")
	}
	return c.Status(fiber.StatusCreated).JSON(InsertedResponse{InsertedID: id, Message: "Item saved successfully"})
}

func (h *CatalogHandler) delete(c fiber.Ctx, store CatalogStore) error {
	err := store.DeleteByID(c.Context(), c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "Item not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to delete item")
	}
	return c.JSON(MessageResponse{Message: "Item deleted"})
}

// UploadPoster handles POST /upload/poster: multipart image in, public URL out.
func (h *CatalogHandler) UploadPoster(c fiber.Ctx) error {
	file, err := c.FormFile("poster")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, "poster file is required")
	}

	src, err := file.Open()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to read upload")
	}
	defer src.Close()

	// Sniff the MIME type, then rewind for the actual upload.
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to read upload")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to read upload")
	}
	mimeType := http.DetectContentType(buffer[:n])

	filename := uniqueFilename(file.Filename)
	if err := h.media.Upload(c.Context(), filename, src, file.Size, mimeType); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to store poster")
	}

	return c.JSON(FileResponse{Filename: filename, URL: h.media.URL(filename)})
}

// DeletePoster handles DELETE /upload/poster/:filename.
func (h *CatalogHandler) DeletePoster(c fiber.Ctx) error {
	err := h.media.Delete(c.Context(), c.Params("filename"))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, "File not found")
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, "failed to delete poster")
	}
	return c.JSON(MessageResponse{Message: "File deleted"})
}

func uniqueFilename(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}
