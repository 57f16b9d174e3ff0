package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leadcapture/internal/config"
	"leadcapture/internal/database"
	"leadcapture/internal/domain/access"
	"leadcapture/internal/domain/admin"
	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/dashboard"
	"leadcapture/internal/domain/feed"
	"leadcapture/internal/domain/landing"
	"leadcapture/internal/domain/lead"
	"leadcapture/internal/middleware"
	jwtsvc "leadcapture/internal/pkg/jwt"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&landing.LandingPage{},
		&access.AdminAccess{},
		&access.AccessRequest{},
		&lead.Lead{},
	); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := auth.NewRepository(db)
	pageRepo := landing.NewRepository(db)
	accessRepo := access.NewRepository(db)
	leadRepo := lead.NewRepository(db)

	hub := feed.NewHub()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	landingService := landing.NewService(pageRepo, leadRepo)
	landingHandler := landing.NewHandler(landingService)

	accessService := access.NewService(accessRepo, accessRepo, userRepo, pageRepo)
	accessHandler := access.NewHandler(accessService)

	leadService := lead.NewService(leadRepo, pageRepo, accessRepo, hub)
	leadHandler := lead.NewHandler(leadService)

	adminService := admin.NewService(userRepo, accessService, accessRepo, leadRepo)
	adminHandler := admin.NewHandler(adminService)

	dashboardService := dashboard.NewService(leadService, pageRepo, userRepo, accessRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	feedHandler := feed.NewHandler(hub, accessRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.IsProduction()))
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		// public
		auth.RegisterPublicRoutes(api, authHandler)
		landing.RegisterPublicRoutes(api, landingHandler)
		lead.RegisterPublicRoutes(api, leadHandler)

		// authenticated
		protected := api.Group("")
		protected.Use(middleware.Auth(j))
		{
			auth.RegisterProtectedRoutes(protected, authHandler)
			landing.RegisterRoutes(protected, landingHandler)
			lead.RegisterRoutes(protected, leadHandler)
			access.RegisterRequestRoutes(protected, accessHandler)
			feed.RegisterRoutes(protected, feedHandler)
			dashboard.RegisterRoutes(protected, dashboardHandler)

			// super-admin management surface
			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.SuperAdminOnly())
			{
				admin.RegisterRoutes(adminGroup, adminHandler)
				access.RegisterAdminRoutes(adminGroup, accessHandler)
			}
		}
	}

	log.Printf("listening on :%s env=%s", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
