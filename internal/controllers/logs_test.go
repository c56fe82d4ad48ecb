package controllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"cyco-backend/internal/repository"
)

type fakeLogStore struct {
	docs map[string]bson.M
}

func (f *fakeLogStore) Insert(_ context.Context, doc bson.M) (string, error) {
	id := "r" + string(rune('0'+len(f.docs)))
	f.docs[id] = doc
	return id, nil
}

func (f *fakeLogStore) ListAll(_ context.Context) ([]bson.M, error) {
	out := make([]bson.M, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeLogStore) UpdateByID(_ context.Context, id string, patch bson.M) error {
	doc, ok := f.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range patch {
		doc[k] = v
	}
	return nil
}

func (f *fakeLogStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func newLogsApp(events *fakeLogStore) *fiber.App {
	app := fiber.New()
	h := NewLogsHandler(events, &fakeLogStore{docs: map[string]bson.M{}},
		&fakeLogStore{docs: map[string]bson.M{}}, &fakeLogStore{docs: map[string]bson.M{}})
	app.Post("/events", h.Events.Create)
	app.Get("/events", h.Events.List)
	app.Patch("/events/:id", h.Events.Update)
	app.Delete("/events/:id", h.Events.Delete)
	return app
}

func logRequest(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestLogCreateAndList(t *testing.T) {
	store := &fakeLogStore{docs: map[string]bson.M{}}
	app := newLogsApp(store)

	status := logRequest(t, app, "POST", "/events", `{"_id":"forged","kind":"play","title":"Dune"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	if len(store.docs) != 1 {
		t.Fatalf("stored %d docs, want 1", len(store.docs))
	}
	for _, doc := range store.docs {
		if _, forged := doc["_id"]; forged {
			t.Error("client-supplied _id was stored")
		}
		if doc["kind"] != "play" {
			t.Errorf("kind = %v, want play", doc["kind"])
		}
	}

	status = logRequest(t, app, "GET", "/events", "")
	if status != fiber.StatusOK {
		t.Errorf("list status = %d, want 200", status)
	}
}

func TestLogCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"malformed body", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newLogsApp(&fakeLogStore{docs: map[string]bson.M{}})
			status := logRequest(t, app, "POST", "/events", tt.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestLogUpdate(t *testing.T) {
	store := &fakeLogStore{docs: map[string]bson.M{"r0": {"kind": "play"}}}
	app := newLogsApp(store)

	status := logRequest(t, app, "PATCH", "/events/nope", `{"kind":"pause"}`)
	if status != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", status)
	}

	status = logRequest(t, app, "PATCH", "/events/r0", `{}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("empty patch status = %d, want 400", status)
	}

	status = logRequest(t, app, "PATCH", "/events/r0", `{"kind":"pause"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if store.docs["r0"]["kind"] != "pause" {
		t.Errorf("kind = %v, want pause", store.docs["r0"]["kind"])
	}
}

func TestLogDelete(t *testing.T) {
	store := &fakeLogStore{docs: map[string]bson.M{"r0": {"kind": "play"}}}
	app := newLogsApp(store)

	status := logRequest(t, app, "DELETE", "/events/nope", "")
	if status != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", status)
	}

	status = logRequest(t, app, "DELETE", "/events/r0", "")
	if status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if len(store.docs) != 0 {
		t.Errorf("%d docs left after delete, want 0", len(store.docs))
	}
}
