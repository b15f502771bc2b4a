package router

import (
	"database/sql"
	"net/http"

	mem "virtual-pet/internal/adapters/storage/memory"
	pg "virtual-pet/internal/adapters/storage/postgres"
	"virtual-pet/internal/domain/events"
	"virtual-pet/internal/domain/inventory"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/domain/stats"
	"virtual-pet/internal/domain/traits"
	"virtual-pet/internal/middleware"
	"virtual-pet/internal/ports/auth"

	_ "virtual-pet/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger *zap.Logger
	// Opcional; default stats.DefaultRates().
	Engine *stats.Engine

	Swagger bool

	// Ver pets.Options.SweepConcurrency.
	SweepConcurrency int
}

// App expone el handler y los servicios que necesitan los procesos de fondo.
type App struct {
	Handler http.Handler
	Pets    *pets.Service
}

func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(logger.Named("http")))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	var (
		petRepo       pets.Repository
		eventRepo     events.Repository
		inventoryRepo inventory.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		eventRepo = pg.NewEventsRepo(opts.DB)
		inventoryRepo = pg.NewInventoryRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		eventRepo = mem.NewEventRepo()
		inventoryRepo = mem.NewInventoryRepo()
	}

	// Services por módulo
	eventsSvc := events.NewService(eventRepo)
	inventorySvc := inventory.NewService(inventoryRepo)
	petsSvc := pets.NewService(petRepo, pets.Options{
		Events:    eventsSvc,
		Inventory: inventorySvc,
		Engine:    opts.Engine,
		Loader:    traits.NewLoader(logger),
		Logger:    logger,

		SweepConcurrency: opts.SweepConcurrency,
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	events.RegisterRoutes(r, eventsSvc, petsSvc)
	inventory.RegisterRoutes(r, inventorySvc)
	traits.RegisterRoutes(r)

	return &App{Handler: r, Pets: petsSvc}
}
