package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/annalofgren/wishvault-backend/api/controllers"
	"github.com/annalofgren/wishvault-backend/api/middleware"
	"github.com/annalofgren/wishvault-backend/internal/auth"
	"github.com/annalofgren/wishvault-backend/internal/feed"
	"github.com/annalofgren/wishvault-backend/internal/items"
	"github.com/annalofgren/wishvault-backend/internal/search"
	"github.com/annalofgren/wishvault-backend/internal/users"
	"github.com/annalofgren/wishvault-backend/internal/wishlists"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	"github.com/annalofgren/wishvault-backend/pkg/db"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
	"github.com/annalofgren/wishvault-backend/pkg/metrics"
	"github.com/annalofgren/wishvault-backend/pkg/ratelimit"
	"github.com/annalofgren/wishvault-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	limiter ratelimit.Store,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
	wishlistService wishlists.Service,
	itemService items.Service,
	feedService feed.Service,
	searchService search.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.CSRF(cfg.CSRF, logg))
		r.Get("/csrf", controllers.AuthCSRF(cfg.CSRF, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(authService, cfg.Session, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(registerService, cfg.Session, logg))
		r.Post("/logout", controllers.AuthLogout(cfg.Session, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CSRF(cfg.CSRF, logg))

		// Public reads. The viewer is seeded when a session cookie is
		// present so shaping and feed exclusion still apply.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.Session, logg))

			r.Get("/feed", controllers.FeedList(feedService, logg))
			r.Get("/search", controllers.Search(searchService, logg))
			r.Get("/users/{userId}", controllers.UserPublicProfile(userService, wishlistService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Session, logg))

			r.Get("/ping", controllers.PrivatePing())

			r.Get("/users/me", controllers.UserProfile(userService, logg))
			r.Patch("/users/me", controllers.UserUpdateProfile(userService, logg))

			r.Route("/wishlists", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(wishlistService, logg))
				r.Post("/", controllers.WishlistCreate(wishlistService, logg))
				r.Route("/{wishlistId}", func(r chi.Router) {
					r.Get("/", controllers.WishlistDetail(wishlistService, logg))
					r.Patch("/", controllers.WishlistUpdate(wishlistService, logg))
					r.Delete("/", controllers.WishlistDelete(wishlistService, logg))
					r.Post("/items", controllers.ItemAdd(itemService, logg))
					r.Post("/items/external", controllers.ItemAddExternal(itemService, logg))
				})
			})

			r.Route("/items/{itemId}", func(r chi.Router) {
				r.Patch("/", controllers.ItemUpdate(itemService, logg))
				r.Delete("/", controllers.ItemDelete(itemService, logg))
				r.Post("/purchase", controllers.ItemPurchase(itemService, logg))
				r.Delete("/purchase", controllers.ItemCancelPurchase(itemService, logg))
			})

			r.Get("/purchases", controllers.PurchaseList(itemService, logg))
		})
	})

	return r
}
