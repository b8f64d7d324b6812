package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/api/routes"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/cart"
	"Foodgram-Backend/pkg/favourite"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/jwt"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/shortlink"
	"Foodgram-Backend/pkg/user"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const defaultTokenTTL = 120 * time.Minute

// AppDeps are the outside services NewApp does not build itself.
type AppDeps struct {
	Storage storage.AwsS3
	Mailer  mailing.Mailer

	// AccessLog receives the request log. When nil it goes to cfg.LogFile,
	// or stdout if that is empty.
	AccessLog io.Writer

	ShortLinkOptions []shortlink.Option
}

func NewApp(db *gorm.DB, cfg *utils.Config, deps AppDeps) (*fiber.App, error) {
	if deps.Storage == nil {
		return nil, errors.New("storage is required")
	}
	if deps.Mailer == nil {
		deps.Mailer = mailing.NewMailer(mailing.MailConfig{})
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "Foodgram",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, err := openAccessLog(cfg, deps.AccessLog)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))

	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		}))
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	favouriteRepository := favourite.NewFavouriteRepository(db)
	cartRepository := cart.NewCartRepository(db)
	shortLinkRepository := shortlink.NewShortLinkRepository(db)

	// Service
	ttl := time.Duration(cfg.JWTTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	jwtService := jwt.NewJWTService(cfg.JWTSecret, ttl)
	userService := user.NewUserService(userRepository, recipeRepository, jwtService, deps.Storage, deps.Mailer)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository, userRepository, deps.Storage)
	favouriteService := favourite.NewFavouriteService(favouriteRepository, recipeRepository, deps.Storage)
	cartService := cart.NewCartService(cartRepository, recipeRepository, userRepository, deps.Storage)
	shortLinkService := shortlink.NewShortLinkService(shortLinkRepository, recipeRepository, cfg.AppURL, deps.ShortLinkOptions...)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	engagementHandler := handlers.NewEngagementHandler(favouriteService, cartService)
	shortLinkHandler := handlers.NewShortLinkHandler(shortLinkService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		IngredientHandler: ingredientHandler,
		RecipeHandler:     recipeHandler,
		EngagementHandler: engagementHandler,
		ShortLinkHandler:  shortLinkHandler,
		Middleware:        middleware.NewMiddleware(userService, cfg.CORSOrigins),
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func openAccessLog(cfg *utils.Config, override io.Writer) (io.Writer, error) {
	if override != nil {
		return override, nil
	}
	if cfg.LogFile == "" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return file, nil
}

// errorHandler renders errors that escaped the handlers, including unknown
// routes, in the usual envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	message := domain.MessageFailedProcessRequest
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		message = ferr.Message
	}
	return presenters.ErrorResponse(c, presenters.StatusFor(err), message, err)
}
