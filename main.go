package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/pharmatrace/dashboard-api/auth"
	"github.com/pharmatrace/dashboard-api/connections"
	"github.com/pharmatrace/dashboard-api/controllers/api"
	"github.com/pharmatrace/dashboard-api/jobs"
	"github.com/pharmatrace/dashboard-api/middleware"
	"github.com/pharmatrace/dashboard-api/models/account"
)

type myRouter struct {
	httprouter.Router
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (mr *myRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	mr.Router.ServeHTTP(rw, r)
	log.WithFields(log.Fields{
		"method": r.Method,
		"IP":     r.RemoteAddr,
		"URI":    r.URL.Path,
		"status": rw.statusCode,
	}).Info("visit")
}

func newRouter() *myRouter {
	r := &myRouter{
		Router: *httprouter.New(),
	}
	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	// The signing secret is the highest-value secret in the system;
	// refuse to start without it.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	codec := auth.NewCodec(jwtSecret)
	sessionCookie := auth.NewSessionCookie(os.Getenv("ENV") == "production")
	accountStore := &account.Postgres{}
	resolver := auth.NewResolver(codec, sessionCookie, accountStore)
	mw := auth.NewMiddleware(resolver)
	guard := auth.NewGuard(codec, sessionCookie, resolver)

	api.Setup(codec, sessionCookie)

	router := newRouter()

	// health check
	router.GET("/hello", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello World!"}`))
	})

	// auth apis
	router.POST("/api/auth/register", api.Register)
	router.POST("/api/auth/login", api.Login)
	router.POST("/api/auth/logout", api.Logout)
	router.GET("/api/auth/me", mw.RequireUser(api.Me))

	// user directory apis
	router.GET("/api/users", mw.RequireUser(api.ListUsers))
	router.POST("/api/users", mw.RequireAdmin(api.CreateUser))

	// transaction log apis
	router.GET("/api/transactions", mw.RequireUser(api.ListTransactions))
	router.GET("/api/transactions/:id", mw.RequireUser(api.GetTransaction))
	router.POST("/api/transactions", mw.RequireUser(api.CreateTransaction))

	// dashboard apis
	router.GET("/api/dashboard/stats", mw.RequireUser(api.DashboardStats))

	// admin apis
	admin := auth.NewAdminRouter(&router.Router, mw)
	admin.GET("/api/admin/users", api.AdminListUsers)
	admin.GET("/api/admin/users/:id", api.AdminGetUser)
	admin.PUT("/api/admin/users/:id", api.AdminUpdateUser)
	admin.DELETE("/api/admin/users/:id", api.AdminDeleteUser)

	// keep the dashboard stats cache warm
	c := cron.New()
	c.AddJob("@every 10m", jobs.NewStatsCacheRefresher())
	c.Start()

	// gops agent
	if err := agent.Listen(agent.Options{Addr: ":6060", ShutdownCleanup: true}); err != nil {
		log.Fatal(err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	// Web Server
	log.Info("Web Server Start on Port " + port)
	srv := http.Server{
		Addr:    ":" + port,
		Handler: middleware.CORS(guard.Wrap(router)),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("Shutdown Web Server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Web Server Shutdown Failed")
	}
	connections.ClosePostgres()
	connections.CloseRedis()
	log.Info("Web Server Was Been Shutdown")
}
