package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/sefazor/recipebook-backend/internal/config"
	"github.com/sefazor/recipebook-backend/internal/handler"
	"github.com/sefazor/recipebook-backend/internal/middleware"
	"github.com/sefazor/recipebook-backend/internal/repository"
	"github.com/sefazor/recipebook-backend/internal/service"
	"github.com/sefazor/recipebook-backend/pkg/database"
	"github.com/sefazor/recipebook-backend/pkg/email"
	"github.com/sefazor/recipebook-backend/pkg/logger"
	"github.com/sefazor/recipebook-backend/pkg/storage"
	"github.com/sefazor/recipebook-backend/pkg/validator"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Seed tags and the ingredient catalog
	if err := database.Seed(db, cfg.FixturesDir, zapLogger); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Image storage
	var images storage.ImageStorage
	switch cfg.Storage.Backend {
	case "r2":
		images, err = storage.NewR2Storage(context.Background(), storage.R2Options{
			AccountID:       cfg.Storage.R2.AccountID,
			AccessKeyID:     cfg.Storage.R2.AccessKeyID,
			SecretAccessKey: cfg.Storage.R2.SecretAccessKey,
			Bucket:          cfg.Storage.R2.Bucket,
			PublicURL:       cfg.Storage.R2.PublicURL,
		})
		if err != nil {
			log.Fatal("Failed to initialize R2 storage: ", err)
		}
	default:
		images, err = storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	}

	// Email service
	emailService := email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, zapLogger)

	// Services
	authService := service.NewAuthService(userRepo, emailService, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, subscriptionRepo)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	recipeService := service.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		images,
		cfg.MinIngredientAmount,
		cfg.MaxIngredientAmount,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	cartService := service.NewShoppingCartService(cartRepo, recipeRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo)

	validator := validator.New()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, subscriptionService, validator)
	tagHandler := handler.NewTagHandler(tagService, validator)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, validator)
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, cartService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.Storage.Backend == "local" {
		app.Static(cfg.Storage.PublicURL, cfg.Storage.LocalDir)
	}

	secret := []byte(cfg.JWTSecret)
	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Read-open routes; an Authorization header personalizes the
	// is_subscribed / is_favorited / is_in_shopping_cart flags.
	optional := middleware.AuthOptional(secret)
	api.Get("/tags", optional, tagHandler.ListTags)
	api.Get("/tags/:id", optional, tagHandler.GetTag)
	api.Get("/ingredients", optional, ingredientHandler.ListIngredients)
	api.Get("/ingredients/:id", optional, ingredientHandler.GetIngredient)
	api.Get("/recipes", optional, recipeHandler.ListRecipes)
	api.Get("/users", optional, userHandler.ListUsers)

	// Protected routes
	required := middleware.AuthRequired(secret)

	user := api.Group("/users")
	user.Get("/me", required, userHandler.GetMyProfile)
	user.Put("/me", required, userHandler.UpdateProfile)
	user.Post("/set_password", required, userHandler.ChangePassword)
	user.Get("/subscriptions", required, userHandler.GetSubscriptions)
	user.Get("/:id", optional, userHandler.GetUser)
	user.Post("/:id/subscribe", required, userHandler.Subscribe)
	user.Delete("/:id/subscribe", required, userHandler.Unsubscribe)

	recipes := api.Group("/recipes")
	recipes.Get("/download_shopping_cart", required, recipeHandler.DownloadShoppingCart)
	recipes.Post("/", required, recipeHandler.CreateRecipe)
	recipes.Get("/:id", optional, recipeHandler.GetRecipe)
	recipes.Patch("/:id", required, recipeHandler.UpdateRecipe)
	recipes.Delete("/:id", required, recipeHandler.DeleteRecipe)
	recipes.Post("/:id/favorite", required, recipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", required, recipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", required, recipeHandler.AddToCart)
	recipes.Delete("/:id/shopping_cart", required, recipeHandler.RemoveFromCart)

	// Admin-gated reference data management
	api.Post("/tags", required, tagHandler.CreateTag)
	api.Delete("/tags/:id", required, tagHandler.DeleteTag)
	api.Post("/ingredients", required, ingredientHandler.CreateIngredient)
	api.Delete("/ingredients/:id", required, ingredientHandler.DeleteIngredient)

	log.Fatal(app.Listen(":" + cfg.Port))
}
