package detector

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fakenews-detector/internal/http/cookie"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/analysis/history"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/analysis/predict"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/handlers/health"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/account"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/analysis"
)

// maxRequestBody ограничивает размер тела любого запроса.
const maxRequestBody = 100 << 10

// Deps — зависимости HTTP-маршрутов.
type Deps struct {
	Logger         *slog.Logger
	DB             health.Pinger
	Sessions       middlewarectx.Resolver
	Cookies        cookie.Options
	Accounts       *account.Service
	Analyses       *analysis.Service
	AllowedOrigins []string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.RequestSize(maxRequestBody),
		cors.Handler(cors.Options{
			AllowOriginFunc: func(_ *http.Request, origin string) bool {
				return originAllowed(origin, d.AllowedOrigins)
			},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	// Открытые конечные точки
	r.Get("/health", health.New(d.Logger, d.DB).ServeHTTP)
	r.Post("/signup", signup.New(d.Logger, d.Accounts).ServeHTTP)
	r.Post("/login", login.New(d.Logger, d.Accounts, d.Cookies).ServeHTTP)
	r.Post("/logout", logout.New(d.Logger, d.Accounts, d.Cookies).ServeHTTP)

	// Группа с проверкой сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(d.Sessions, d.Cookies, d.Logger))
		r.Post("/predict", predict.New(d.Logger, d.Analyses).ServeHTTP)
		r.Get("/my-analysis", history.New(d.Logger, d.Analyses).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// originAllowed пропускает явно перечисленные источники, а также любые
// источники на localhost и 127.0.0.1.
func originAllowed(origin string, allowed []string) bool {
	if slices.Contains(allowed, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}
