package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coworking/internal/config"
	"coworking/internal/database"
	"coworking/internal/middleware"
	"coworking/internal/modules/auth"
	"coworking/internal/modules/booking"
	"coworking/internal/modules/catalog"
	"coworking/internal/modules/notify"
	"coworking/internal/modules/wallet"
	jwtsvc "coworking/internal/pkg/jwt"
	"coworking/internal/pkg/logger"
	"coworking/internal/repository"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		logger.L().Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := notify.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	walletService := wallet.NewService(db)
	walletHandler := wallet.NewHandler(walletService, hub)

	bookingService := booking.NewService(db, bookingRepo, cfg.Refund, hub)
	bookingHandler := booking.NewHandler(bookingService)

	notifyHandler := notify.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
		}
	}

	logger.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal(err)
	}
}
