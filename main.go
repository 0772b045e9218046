package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MJS022423/GlamURe/config"
	"github.com/MJS022423/GlamURe/database"
	"github.com/MJS022423/GlamURe/handlers"
	"github.com/MJS022423/GlamURe/notify"
	"github.com/MJS022423/GlamURe/routes"
	"github.com/MJS022423/GlamURe/store"
	"github.com/MJS022423/GlamURe/uploads"
)

func main() {
	log.Println("Starting GlamURe backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connectWithRetry(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Println("MongoDB disconnect failed:", err)
		}
	}()
	log.Println("MongoDB connected")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("Failed to create indexes: ", err)
	}
	cancel()

	notifier, err := notify.New(db, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
	if err != nil {
		log.Fatal("Failed to initialize notifier: ", err)
	}

	var uploader uploads.ImageUploader
	if cfg.CloudinaryURL != "" {
		uploader, err = uploads.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary: ", err)
		}
		log.Println("Image uploads: Cloudinary")
	} else {
		uploader = &uploads.Inline{}
		log.Println("Image uploads: inline data URLs (set CLOUDINARY_URL for production)")
	}

	posts := store.NewPostStore(db)
	h := &handlers.Handler{
		Posts:     posts,
		Likes:     store.NewLikeStore(db),
		Bookmarks: store.NewBookmarkStore(db),
		Comments:  store.NewCommentStore(db),
		Board:     store.NewLeaderboardStore(posts),
		Users:     store.NewUserStore(db),
		Notifier:  notifier,
		Uploader:  uploader,
		JWTSecret: cfg.JWTSecret,
	}

	router := routes.SetupRouter(h, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}

	log.Println("Server stopped")
}

func connectWithRetry(cfg *config.Config) (*database.DB, error) {
	var db *database.DB
	var err error
	for i := 1; i <= 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		db, err = database.Connect(ctx, cfg.MongoURI, cfg.Database)
		cancel()
		if err == nil {
			return db, nil
		}
		log.Printf("MongoDB connection attempt %d failed: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}
