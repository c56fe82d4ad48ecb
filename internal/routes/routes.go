package routes

import (
	"github.com/gofiber/fiber/v3"

	"cyco-backend/internal/controllers"
	"cyco-backend/internal/middleware"
	"cyco-backend/internal/token"
)

// Handlers holds every handler the router wires up.
type Handlers struct {
	Users    *controllers.UserHandler
	Wishlist *controllers.WishlistHandler
	Catalog  *controllers.CatalogHandler
	Forum    *controllers.ForumHandler
	Payments *controllers.PaymentHandler
	Logs     *controllers.LogsHandler
}

// Setup registers all API routes. Admin-only mutations sit behind the
// auth + role gates; everything else matches the public surface.
func Setup(app *fiber.App, h *Handlers, tokens *token.Service, roles middleware.RoleLookup) {
	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin(roles)

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("cyco-engine")
	})

	// Auth and users
	app.Post("/jwt", h.Users.Login)
	app.Post("/register", h.Users.Register)
	app.Get("/users", h.Users.ListUsers)
	app.Get("/user/:email", h.Users.GetUser)
	app.Get("/users/admin/:email", h.Users.IsAdmin, requireAuth)
	app.Patch("/users/admin/:id", h.Users.GrantAdmin, requireAuth, requireAdmin)
	app.Delete("/users/:id", h.Users.DeleteUser, requireAuth, requireAdmin)

	// Catalog
	app.Get("/movies", h.Catalog.ListMovies)
	app.Post("/movies", h.Catalog.CreateMovie)
	app.Get("/series", h.Catalog.ListSeries, requireAuth)
	app.Get("/liveTV", h.Catalog.ListLiveTV)
	app.Post("/liveTV", h.Catalog.CreateLiveTV)
	app.Delete("/movies/:id", h.Catalog.DeleteMovie, requireAuth, requireAdmin)
	app.Delete("/liveTV/:id", h.Catalog.DeleteLiveTV, requireAuth, requireAdmin)
	app.Post("/upload/poster", h.Catalog.UploadPoster)
	app.Delete("/upload/poster/:filename", h.Catalog.DeletePoster, requireAuth, requireAdmin)

	// Wishlist
	app.Post("/wishlist", h.Wishlist.Add)
	app.Delete("/wishlist/:email/:movieId", h.Wishlist.Remove)

	// Forum
	app.Post("/forumQueries", h.Forum.Create)
	app.Get("/forumQueries", h.Forum.List)
	app.Get("/forumQueries/:id", h.Forum.Get)
	app.Put("/forumQueries/:id", h.Forum.IncrementViews)
	app.Put("/forumQueries/:id/vote", h.Forum.Vote)
	app.Post("/forumQueries/comments/:id", h.Forum.Comment)
	app.Post("/report/query", h.Forum.Report)

	// Payments
	app.Post("/create-payment-intent", h.Payments.CreateIntent)
	app.Post("/payments", h.Payments.Record)
	app.Get("/monthly-revenue", h.Payments.MonthlyRevenue)

	// Append-mostly logs
	app.Post("/newEvent", h.Logs.Events.Create)
	logCollections := map[string]*controllers.LogRoutes{
		"/events":        h.Logs.Events,
		"/feedback":      h.Logs.Feedback,
		"/history":       h.Logs.History,
		"/subscriptions": h.Logs.Subscriptions,
	}
	for path, routes := range logCollections {
		app.Post(path, routes.Create)
		app.Get(path, routes.List)
		app.Patch(path+"/:id", routes.Update)
		app.Delete(path+"/:id", routes.Delete)
	}
}
