package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"cyco-backend/internal/models"
	"cyco-backend/internal/repository"
)

// fakeWishlistStore mirrors the repository's guarded-update semantics in memory.
type fakeWishlistStore struct {
	wishlists map[string][]models.MovieRef // email -> wishlist
}

func (f *fakeWishlistStore) AddToWishlist(_ context.Context, email string, movie models.MovieRef) (repository.WishlistResult, error) {
	list, ok := f.wishlists[email]
	if !ok {
		return repository.WishlistUserMissing, nil
	}
	for _, m := range list {
		if m.MovieID == movie.MovieID {
			return repository.WishlistAlreadyPresent, nil
		}
	}
	f.wishlists[email] = append(list, movie)
	return repository.WishlistAdded, nil
}

func (f *fakeWishlistStore) RemoveFromWishlist(_ context.Context, email, movieID string) error {
	list, ok := f.wishlists[email]
	if !ok {
		return repository.ErrNotFound
	}
	for i, m := range list {
		if m.MovieID == movieID {
			f.wishlists[email] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newWishlistApp(store *fakeWishlistStore) *fiber.App {
	app := fiber.New()
	h := NewWishlistHandler(store)
	app.Post("/wishlist", h.Add)
	app.Delete("/wishlist/:email/:movieId", h.Remove)
	return app
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	store := &fakeWishlistStore{wishlists: map[string][]models.MovieRef{
		"a@x.com": {},
	}}
	app := newWishlistApp(store)

	body, _ := json.Marshal(map[string]any{
		"user":  map[string]string{"email": "a@x.com"},
		"movie": map[string]string{"_id": "m1"},
	})

	for attempt, wantMsg := range []string{"Movie added to wishlist", "Already in wishlist"} {
		req := httptest.NewRequest("POST", "/wishlist", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("attempt %d: %v", attempt, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("attempt %d: status = %d, want 200", attempt, resp.StatusCode)
		}

		var got MessageResponse
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("attempt %d: decode: %v", attempt, err)
		}
		if got.Message != wantMsg {
			t.Errorf("attempt %d: message = %q, want %q", attempt, got.Message, wantMsg)
		}
	}

	if n := len(store.wishlists["a@x.com"]); n != 1 {
		t.Errorf("wishlist has %d entries, want exactly 1", n)
	}
}

func TestWishlistAddErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing email", `{"user":{},"movie":{"_id":"m1"}}`, fiber.StatusBadRequest},
		{"missing movie id", `{"user":{"email":"a@x.com"},"movie":{}}`, fiber.StatusBadRequest},
		{"unknown user", `{"user":{"email":"ghost@x.com"},"movie":{"_id":"m1"}}`, fiber.StatusNotFound},
		{"malformed body", `{not json`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeWishlistStore{wishlists: map[string][]models.MovieRef{"a@x.com": {}}}
			app := newWishlistApp(store)

			req := httptest.NewRequest("POST", "/wishlist", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestWishlistRemove(t *testing.T) {
	store := &fakeWishlistStore{wishlists: map[string][]models.MovieRef{
		"a@x.com": {{MovieID: "m1"}},
	}}
	app := newWishlistApp(store)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/wishlist/a@x.com/m1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if n := len(store.wishlists["a@x.com"]); n != 0 {
		t.Errorf("wishlist has %d entries after removal, want 0", n)
	}

	// A second removal of the same entry is a 404.
	resp, err = app.Test(httptest.NewRequest("DELETE", "/wishlist/a@x.com/m1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
