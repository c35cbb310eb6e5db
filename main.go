package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calyx/cart"
	"calyx/checkout"
	"calyx/config"
	"calyx/db"
	"calyx/mq"
	"calyx/ratelim"
	"calyx/rdx"
	"calyx/routes"
	"calyx/search"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, rateLimiter *ratelim.RateLimiter, cartHandlers *cart.Handlers, checkoutHandlers *checkout.Handlers) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddProductRoutes(router, rateLimiter, cfg)
	routes.AddCartRoutes(router, rateLimiter, cartHandlers)
	routes.AddCheckoutRoutes(router, rateLimiter, checkoutHandlers)
	routes.AddCustomerRoutes(router, rateLimiter)
	routes.AddPageRoutes(router, rateLimiter)
	routes.AddAdminRoutes(router, rateLimiter)
	routes.AddStaticRoutes(router, cfg)

	return router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := config.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Init(ctx, cfg); err != nil {
		cancel()
		log.Fatalf("mongo init error: %v", err)
	}
	if err := rdx.Init(ctx, cfg); err != nil {
		cancel()
		log.Fatalf("redis init error: %v", err)
	}
	search.RebuildAll(ctx)
	cancel()

	go mq.StartIndexingWorker()

	rateLimiter := ratelim.NewRateLimiter()
	engine := cart.NewMongoEngine(cfg)
	cartHandlers := cart.NewHandlers(engine)
	hub := checkout.NewHub()
	checkoutHandlers := checkout.NewHandlers(cfg, engine, hub)

	router := setupRouter(cfg, rateLimiter, cartHandlers, checkoutHandlers)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Api-Key"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	db.Close(shutdownCtx)

	log.Println("Server stopped cleanly")
}
