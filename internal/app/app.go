package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimikegami/bulknest-server/config"
	"github.com/alimikegami/bulknest-server/internal/controller"
	circuitbreaker "github.com/alimikegami/bulknest-server/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/bulknest-server/internal/middleware"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/alimikegami/bulknest-server/internal/service"
	"github.com/alimikegami/bulknest-server/pkg/response"
	"github.com/alimikegami/bulknest-server/pkg/utils"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/sdk/trace"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

type Publisher interface {
	service.EventPublisher
	Close() error
}

type App struct {
	DB        *mongo.Database
	Config    *config.Config
	Server    *echo.Echo
	Publisher Publisher

	// RetryDelay is the base delay between broker write attempts.
	RetryDelay time.Duration

	registry       *prometheus.Registry
	tracerProvider *trace.TracerProvider
	metricsServer  *echo.Echo
}

type repositories struct {
	product repository.ProductRepository
	order   repository.OrderRepository
	user    repository.UserRepository
}

func (app *App) buildRepositories() (repositories, error) {
	switch app.Config.DBDriver {
	case config.DriverMemory:
		return repositories{
			product: repository.CreateNewMemoryProductRepository(),
			order:   repository.CreateNewMemoryOrderRepository(),
			user:    repository.CreateNewMemoryUserRepository(),
		}, nil
	case config.DriverMongoDB:
		if app.DB == nil {
			return repositories{}, errors.New("mongodb driver selected but no database connection given")
		}
		return repositories{
			product: repository.CreateNewMongoDBProductRepository(app.DB),
			order:   repository.CreateNewMongoDBOrderRepository(app.DB),
			user:    repository.CreateNewMongoDBUserRepository(app.DB),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown DB_DRIVER %q", app.Config.DBDriver)
	}
}

func (app *App) buildPublisher() Publisher {
	if app.Publisher != nil {
		return app.Publisher
	}

	if app.Config.KafkaConfig.BrokerAddress == "" {
		log.Info().Msg("BROKER_ADDRESS not set, domain events will only be logged")
		return kafka.CreateLogPublisher()
	}

	delay := app.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	cb := circuitbreaker.CreateCircuitBreaker("event-publisher", 30*time.Second)
	return kafka.CreateKafkaPublisher(kafka.CreateKafkaWriter(app.Config), cb, delay)
}

// Build wires every component and returns the router without listening.
func (app *App) Build() (*echo.Echo, error) {
	if app.Config.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	repos, err := app.buildRepositories()
	if err != nil {
		return nil, err
	}

	app.Publisher = app.buildPublisher()

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return nil, err
	}
	app.tracerProvider = traceProvider
	tracer := traceProvider.Tracer(tracing.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.CreateRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     app.Config.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// HTTP metrics get their own registry so several apps can share a process.
	app.registry = prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: app.registry,
	}))

	e.Use(localmiddleware.Logger)

	isLoggedIn := localmiddleware.IsLoggedIn(utils.CreateJWTVerifier(app.Config.JWTSecret))

	g := e.Group("")

	g.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to BulkNEST Server")
	})
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	productSvc := service.CreateProductService(repos.product, app.Publisher)
	orderSvc := service.CreateOrderService(repos.order, repos.product, app.Publisher)
	userSvc := service.CreateUserService(repos.user, app.Publisher)

	controller.CreateProductController(g, productSvc, isLoggedIn)
	controller.CreateOrderController(g, orderSvc, isLoggedIn)
	controller.CreateUserController(g, userSvc)

	if app.Config.MetricsPort != "" {
		app.metricsServer = echo.New()
		app.metricsServer.HideBanner = true
		app.metricsServer.GET("/metrics", app.MetricsHandler())
	}

	app.Server = e

	return e, nil
}

// MetricsHandler serves the HTTP metrics of this app together with the
// process-wide business counters.
func (app *App) MetricsHandler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{app.registry, prometheus.DefaultGatherer},
	})
}

// Start builds the app unless Build was already called, then listens.
func (app *App) Start() error {
	e := app.Server
	if e == nil {
		var err error
		if e, err = app.Build(); err != nil {
			return err
		}
	}

	if app.metricsServer != nil {
		go func() {
			if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start metrics server")
			}
		}()
	}

	log.Info().Str("port", app.Config.ServicePort).Str("driver", app.Config.DBDriver).Msg("Starting server")

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error

	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.metricsServer != nil {
		errList = append(errList, app.metricsServer.Shutdown(ctx))
	}
	if app.Publisher != nil {
		errList = append(errList, app.Publisher.Close())
	}
	if app.tracerProvider != nil {
		errList = append(errList, app.tracerProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
