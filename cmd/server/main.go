package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pawhub/pawhub/internal/auth"
	"github.com/pawhub/pawhub/internal/config"
	"github.com/pawhub/pawhub/internal/database"
	postgresrepo "github.com/pawhub/pawhub/internal/repository/postgres"
	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/storage"
	"github.com/pawhub/pawhub/internal/transport/http/handlers"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Database
	if err := database.Migrate(ctx, database.DSN(cfg)); err != nil {
		logrus.Fatal(err)
	}
	pool, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Close()
	logrus.Info("Connected to database")

	// Redis (token denylist)
	var denylist *auth.Denylist
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatal(err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unavailable, logout revocation disabled")
	} else {
		denylist = auth.NewDenylist(redisClient)
		logrus.Info("Connected to redis")
	}

	// Object storage
	images, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	petRepo := postgresrepo.NewPetRepo(pool)
	recordRepo := postgresrepo.NewMedicalRecordRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	shopRepo := postgresrepo.NewShopRepo(pool)

	// Services
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, issuer, denylist, images, cfg.UploadTimeout)
	userService := service.NewUserService(userRepo, images, cfg.UploadTimeout)
	petService := service.NewPetService(petRepo, recordRepo, images, cfg.UploadTimeout)
	postService := service.NewPostService(postRepo, images, cfg.UploadTimeout)
	shopService := service.NewShopService(shopRepo, images, cfg.UploadTimeout)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	petHandler := handlers.NewPetHandler(petService)
	postHandler := handlers.NewPostHandler(postService)
	shopHandler := handlers.NewShopHandler(shopService)

	// Middleware
	authMW := middleware.Auth(issuer, denylist)
	adminMW := middleware.RequireAdmin(userRepo)

	protected := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authMW(adminMW(h))
	}

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Auth / Profile
	mux.Handle("POST /api/v1/auth/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/v1/users/me", protected(userHandler.Me))
	mux.Handle("PATCH /api/v1/users/me", protected(userHandler.UpdateMe))

	// Protected - Pets
	mux.Handle("POST /api/v1/pets", protected(petHandler.Create))
	mux.Handle("GET /api/v1/pets", protected(petHandler.List))
	mux.Handle("GET /api/v1/pets/{id}", protected(petHandler.Get))
	mux.Handle("PATCH /api/v1/pets/{id}", protected(petHandler.Update))
	mux.Handle("DELETE /api/v1/pets/{id}", protected(petHandler.Delete))
	mux.Handle("POST /api/v1/pets/{id}/image", protected(petHandler.AttachPhoto))

	// Protected - Medical records
	mux.Handle("POST /api/v1/pets/{id}/records", protected(petHandler.AddRecord))
	mux.Handle("GET /api/v1/pets/{id}/records", protected(petHandler.ListRecords))
	mux.Handle("PATCH /api/v1/records/{id}", protected(petHandler.UpdateRecord))
	mux.Handle("DELETE /api/v1/records/{id}", protected(petHandler.DeleteRecord))

	// Protected - Posts
	mux.Handle("POST /api/v1/posts", protected(postHandler.Create))
	mux.Handle("GET /api/v1/posts", protected(postHandler.Feed))
	mux.Handle("GET /api/v1/posts/{id}", protected(postHandler.Get))
	mux.Handle("DELETE /api/v1/posts/{id}", protected(postHandler.Delete))
	mux.Handle("POST /api/v1/posts/{id}/comments", protected(postHandler.AddComment))

	// Protected - Shops (writes are admin only)
	mux.Handle("GET /api/v1/shops", protected(shopHandler.List))
	mux.Handle("GET /api/v1/shops/{id}", protected(shopHandler.Get))
	mux.Handle("POST /api/v1/shops", adminOnly(shopHandler.Create))
	mux.Handle("PATCH /api/v1/shops/{id}", adminOnly(shopHandler.Update))
	mux.Handle("DELETE /api/v1/shops/{id}", adminOnly(shopHandler.Delete))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logrus.Infof("Starting server on %s", addr)
	logrus.Fatal(http.ListenAndServe(addr, middleware.CORS(middleware.JSONMuxErrors(mux))))
}
