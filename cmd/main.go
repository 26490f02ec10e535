package main

import (
	"context"
	"log"
	"media-shop-server/config"
	_ "media-shop-server/docs"
	"media-shop-server/internal/handler"
	"media-shop-server/internal/ports"
	"media-shop-server/internal/repository"
	"media-shop-server/internal/security"
	"media-shop-server/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Media-shop-server
// @version 1.0
// @description REST API магазина цифровых медиа-продуктов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.ProductCache)*time.Second)

	// без S3 мастер-файлы читаются с локального диска по пути продукта
	var storage ports.AssetStorage
	if cfg.S3Config.Enabled {
		s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
		if err != nil {
			log.Fatalf("Ошибка создания S3 сервиса: %v", err)
		}
		storage = s3Service
	}

	mediaService, err := service.NewMediaService(&cfg.Watermark)
	if err != nil {
		log.Fatalf("Ошибка создания media сервиса: %v", err)
	}
	bundleService := service.NewBundleService(mediaService.TmpDir())

	productService := service.NewProductService(productRepo, cacheRepo, storage, time.Duration(cfg.TTL.PresignedURL)*time.Second)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, downloadRepo, userRepo, time.Duration(cfg.TTL.DownloadLink)*time.Second)
	downloadService := service.NewDownloadService(downloadRepo, purchaseRepo, productRepo, mediaService, bundleService, storage, mediaService.TmpDir())

	jwtService := security.NewJWTService(&cfg.JWT)
	userService := service.NewUserService(userRepo, jwtService, jwtRepo, cfg.StartTokens)
	authService := service.NewAuthenticationService(jwtRepo, cfg, jwtService, userRepo)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, jwtRepo)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	downloadHandler := handler.NewDownloadHandler(downloadService)

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, jwtService, jwtRepo, cfg)
	setupUserRoutes(router, userHandler, jwtService, jwtRepo, cfg)
	setupProductRoutes(router, productHandler, jwtService, jwtRepo, cfg)
	setupPurchaseRoutes(router, purchaseHandler, jwtService, jwtRepo, cfg)
	setupDownloadRoutes(router, downloadHandler, jwtService, jwtRepo, cfg)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken))
			r.Get("/me", h.GetCurrentUsersUUID)
			r.Post("/refresh", h.RefreshToken)
			r.Post("/logout", h.Logout)
		})
		r.Group(func(r chi.Router) {
			r.Post("/", h.Login)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken))

			r.Route("/{uuid}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Get("/balance", h.GetBalance)
				r.Put("/balance", h.UpdateBalance)
			})
		})
	})
}

func setupProductRoutes(r chi.Router, h *handler.ProductHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken))
			r.Post("/", h.CreateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})
}

func setupPurchaseRoutes(r chi.Router, h *handler.PurchaseHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/purchases", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken))
		r.Post("/", h.CreatePurchase)
		r.Get("/", h.GetPurchaseHistory)
		r.Get("/{id}", h.GetPurchase)
	})
}

func setupDownloadRoutes(r chi.Router, h *handler.DownloadHandler, jwtService *security.JWTService, jwtRepo *repository.JWTRepository, cfg *config.AppConfig) {
	r.Route("/api/downloads", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken))
		r.Get("/", h.ListDownloads)
		r.Get("/{url}", h.Download)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
