// Package bootstrap wires configuration, database, services, and the HTTP
// router together. The server package calls these functions in order.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yudha/sipkl/internal/app/controllers"
	"github.com/yudha/sipkl/internal/app/migrations"
	"github.com/yudha/sipkl/internal/app/repositories"
	"github.com/yudha/sipkl/internal/app/routes"
	"github.com/yudha/sipkl/internal/app/services"
	"github.com/yudha/sipkl/internal/config"
	"github.com/yudha/sipkl/internal/db"
	"github.com/yudha/sipkl/internal/middleware"
	"github.com/yudha/sipkl/internal/pkg/auth"
	"github.com/yudha/sipkl/internal/pkg/filestorage"
	"github.com/yudha/sipkl/internal/pkg/logger"
	"github.com/yudha/sipkl/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos            *repositories.Repositories
	Services         *services.Services
	JWTService       *auth.JWTService
	FileStorage      *filestorage.LocalStorage
	AuthController   *controllers.AuthController
	PKLController    *controllers.PKLController
	JurnalController *controllers.JurnalController
	FileController   *controllers.FileController
}

// LoadConfigAndSetupLogger loads configuration and configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("logger configured")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations, and seeds
// default data when enabled.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info().Msg("database connection established")

	migrationsDir := filepath.Join("internal", "app", "migrations", "sql")
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s", migrationsDir)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDir(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("database migrations applied")

	if err := seed.Run(ctx, database, cfg); err != nil {
		logger.Error().Err(err).Msg("seeding failed, continuing without seed data")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = services.NewServices(deps.Repos, deps.JWTService, deps.FileStorage)

	deps.AuthController = controllers.NewAuthController(deps.Services.Auth)
	deps.PKLController = controllers.NewPKLController(deps.Services.PKL)
	deps.JurnalController = controllers.NewJurnalController(deps.Services.Jurnal)
	deps.FileController = controllers.NewFileController(deps.FileStorage)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	routes.SetupRouter(router,
		deps.AuthController,
		deps.PKLController,
		deps.JurnalController,
		deps.FileController,
		deps.JWTService,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return router
}
