package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	EngagementHandler handlers.EngagementHandler
	ShortLinkHandler  handlers.ShortLinkHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.Prometheus())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Ingredients()
	c.Recipes()
	c.ShortLinks()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuth(c.JWTService)

	user := c.App.Group("/api/users")
	// static segments are registered before /:id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optionalAuth, c.UserHandler.GetUsers)
		user.Get("/me", authRequired, c.UserHandler.Me)
		user.Put("/me/avatar", authRequired, c.UserHandler.UpdateAvatar)
		user.Delete("/me/avatar", authRequired, c.UserHandler.DeleteAvatar)
		user.Post("/set_password", authRequired, c.UserHandler.SetPassword)
		user.Get("/subscriptions", authRequired, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optionalAuth, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", authRequired, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", authRequired, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.OnlyAdmin(), c.IngredientHandler.CreateIngredient)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	}
}

func (c *Config) Recipes() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuth(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("", optionalAuth, c.RecipeHandler.GetRecipes)
		recipes.Post("", authRequired, c.RecipeHandler.CreateRecipe)
		recipes.Get("/download_shopping_cart", authRequired, c.EngagementHandler.DownloadShoppingCart)
		recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", authRequired, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", authRequired, c.RecipeHandler.DeleteRecipe)
		recipes.Get("/:id/get-link", c.ShortLinkHandler.GetLink)
		recipes.Post("/:id/favorite", authRequired, c.EngagementHandler.AddFavourite)
		recipes.Delete("/:id/favorite", authRequired, c.EngagementHandler.RemoveFavourite)
		recipes.Post("/:id/shopping_cart", authRequired, c.EngagementHandler.AddToCart)
		recipes.Delete("/:id/shopping_cart", authRequired, c.EngagementHandler.RemoveFromCart)
	}
}

func (c *Config) ShortLinks() {
	c.App.Get("/s/:hash", c.ShortLinkHandler.Redirect)
}
