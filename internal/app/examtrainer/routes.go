// Package examtrainer предоставляет маршруты для основного приложения.
package examtrainer

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/exam-trainer/internal/config"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/categorylist"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/ticketcreate"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/ticketlist"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/ticketread"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/topiccreate"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/content/topicread"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/results/save"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/results/stats"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/session/check"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/subscription/grant"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/subscription/revoke"
	"github.com/magabrotheeeer/exam-trainer/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/exam-trainer/internal/services/auth"
	contentservice "github.com/magabrotheeeer/exam-trainer/internal/services/content"
	resultsservice "github.com/magabrotheeeer/exam-trainer/internal/services/results"
	sessionguard "github.com/magabrotheeeer/exam-trainer/internal/services/sessionguard"
	subscriptionservice "github.com/magabrotheeeer/exam-trainer/internal/services/subscription"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService, guard *sessionguard.Guard,
	subscriptionService *subscriptionservice.SubscriptionService,
	contentService *contentservice.ContentService,
	resultsService *resultsservice.ResultsService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService, cfg.TokenTTL).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/session/check", check.New(logger, guard).ServeHTTP)
			r.Get("/subscription/status", status.New(logger, subscriptionService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, contentService).ServeHTTP)
			r.Get("/topics/{id}", topicread.New(logger, contentService).ServeHTTP)
			r.Get("/tickets", ticketlist.New(logger, contentService).ServeHTTP)
			r.Get("/tickets/{id}", ticketread.New(logger, contentService).ServeHTTP)
			r.Post("/results", save.New(logger, resultsService).ServeHTTP)
			r.Get("/results/stats", stats.New(logger, resultsService).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/admin/subscriptions", grant.New(logger, subscriptionService).ServeHTTP)
				r.Delete("/admin/subscriptions/{username}", revoke.New(logger, subscriptionService).ServeHTTP)
				r.Post("/admin/topics", topiccreate.New(logger, contentService).ServeHTTP)
				r.Post("/admin/tickets", ticketcreate.New(logger, contentService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Страничные запросы проходят через маршрутный шлюз и попадают в SPA
	r.With(middlewarectx.RouteGate(authService, logger, cfg.TokenTTL)).
		Handle("/*", spaHandler(cfg.SPADir))
}

// spaHandler раздает статические файлы SPA; запросы без расширения файла
// получают index.html, маршрутизацию по страницам выполняет клиент.
func spaHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(filepath.Base(r.URL.Path), ".") {
			fs.ServeHTTP(w, r)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
