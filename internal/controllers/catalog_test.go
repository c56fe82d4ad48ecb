package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"cyco-backend/internal/repository"
	"cyco-backend/internal/storage"
)

type fakeCatalogStore struct {
	docs map[string]bson.M
}

func (f *fakeCatalogStore) Insert(_ context.Context, doc bson.M) (string, error) {
	id := "c" + string(rune('0'+len(f.docs)))
	f.docs[id] = doc
	return id, nil
}

func (f *fakeCatalogStore) ListAll(_ context.Context) ([]bson.M, error) {
	out := make([]bson.M, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeCatalogStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeMediaStore struct {
	objects map[string][]byte // filename -> content
	mimes   map[string]string
}

func (f *fakeMediaStore) Upload(_ context.Context, filename string, src io.Reader, _ int64, mimeType string) error {
	content, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.objects[filename] = content
	f.mimes[filename] = mimeType
	return nil
}

func (f *fakeMediaStore) Delete(_ context.Context, filename string) error {
	if _, ok := f.objects[filename]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(f.objects, filename)
	return nil
}

func (f *fakeMediaStore) URL(filename string) string {
	return "http://media.local/cyco-media/" + filename
}

func newCatalogApp(movies *fakeCatalogStore, media *fakeMediaStore) *fiber.App {
	app := fiber.New()
	h := NewCatalogHandler(movies, movies, movies, media)
	app.Get("/movies", h.ListMovies)
	app.Post("/movies", h.CreateMovie)
	app.Delete("/movies/:id", h.DeleteMovie)
	app.Post("/upload/poster", h.UploadPoster)
	app.Delete("/upload/poster/:filename", h.DeletePoster)
	return app
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: map[string][]byte{}, mimes: map[string]string{}}
}

func TestCatalogCreateStripsID(t *testing.T) {
	store := &fakeCatalogStore{docs: map[string]bson.M{}}
	app := newCatalogApp(store, newFakeMediaStore())

	body := []byte(`{"_id":"forged","title":"Dune","year":2021}`)
	req := httptest.NewRequest("POST", "/movies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var got InsertedResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	doc := store.docs[got.InsertedID]
	if doc == nil {
		t.Fatalf("no stored doc for id %q", got.InsertedID)
	}
	if _, forged := doc["_id"]; forged {
		t.Error("client-supplied _id was stored")
	}
	if doc["title"] != "Dune" {
		t.Errorf("title = %v, want Dune", doc["title"])
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"malformed body", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newCatalogApp(&fakeCatalogStore{docs: map[string]bson.M{}}, newFakeMediaStore())

			req := httptest.NewRequest("POST", "/movies", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestCatalogDelete(t *testing.T) {
	store := &fakeCatalogStore{docs: map[string]bson.M{"c0": {"title": "Dune"}}}
	app := newCatalogApp(store, newFakeMediaStore())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/movies/nope", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", "/movies/c0", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if len(store.docs) != 0 {
		t.Errorf("%d docs left after delete, want 0", len(store.docs))
	}
}

func TestUploadPosterSniffsAndRewinds(t *testing.T) {
	media := newFakeMediaStore()
	app := newCatalogApp(&fakeCatalogStore{docs: map[string]bson.M{}}, media)

	// PNG magic bytes followed by filler, so the sniff has a real signature
	// and the stored object is longer than the 512-byte sniff window.
	content := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 1024)...)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("poster", "cover.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/upload/poster", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got FileResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(got.Filename, ".png") {
		t.Errorf("filename = %q, want original .png extension kept", got.Filename)
	}
	if got.Filename == "cover.png" {
		t.Error("original filename reused, want a generated object name")
	}
	if got.URL != media.URL(got.Filename) {
		t.Errorf("url = %q, want %q", got.URL, media.URL(got.Filename))
	}
	if media.mimes[got.Filename] != "image/png" {
		t.Errorf("sniffed mime = %q, want image/png", media.mimes[got.Filename])
	}
	// The sniff reads the first 512 bytes; the upload must still carry the
	// whole file, proving the reader was rewound.
	if !bytes.Equal(media.objects[got.Filename], content) {
		t.Errorf("stored %d bytes, want the full %d-byte upload", len(media.objects[got.Filename]), len(content))
	}
}

func TestUploadPosterRequiresFile(t *testing.T) {
	app := newCatalogApp(&fakeCatalogStore{docs: map[string]bson.M{}}, newFakeMediaStore())

	resp, err := app.Test(httptest.NewRequest("POST", "/upload/poster", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeletePoster(t *testing.T) {
	media := newFakeMediaStore()
	media.objects["gone.png"] = []byte{1}
	app := newCatalogApp(&fakeCatalogStore{docs: map[string]bson.M{}}, media)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/upload/poster/missing.png", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", "/upload/poster/gone.png", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if _, ok := media.objects["gone.png"]; ok {
		t.Error("object still present after delete")
	}
}
