package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/telecrm/internal/config"
	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/database"
	"github.com/xavierca1/telecrm/internal/infra/http/handlers"
	"github.com/xavierca1/telecrm/internal/infra/http/middleware"
	"github.com/xavierca1/telecrm/internal/infra/mail"
	"github.com/xavierca1/telecrm/internal/infra/oauth"
	"github.com/xavierca1/telecrm/internal/infra/queue"
	"github.com/xavierca1/telecrm/internal/infra/security"
	"github.com/xavierca1/telecrm/internal/infra/token"
	"github.com/xavierca1/telecrm/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Close()

	// 1. Repositories
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)

	// 2. Adapters
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := token.NewJWTService(cfg.JWTSecret, cfg.JWTExpire)
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From,
	)
	providers := oauth.NewRegistry(
		oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL),
		oauth.NewGitHubProvider(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret, cfg.GitHub.CallbackURL),
	)

	// 3. Worker (consumes lead activity, mails call summaries)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	registerUC := usecase.NewRegisterUserUseCase(userRepo, hasher, tokens, mailSender)
	loginUC := usecase.NewLoginUseCase(userRepo, hasher, tokens)
	oauthUC := usecase.NewOAuthLoginUseCase(userRepo, tokens)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	addressUC := usecase.NewUpdateLeadAddressUseCase(leadRepo)
	statusUC := usecase.NewUpdateLeadStatusUseCase(leadRepo, producer)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo)
	leadQueries := usecase.NewLeadQueryUseCase(leadRepo, userRepo)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, oauthUC, providers, cfg.ClientURL, cfg.JWTExpire)
	userHandler := handlers.NewUserHandler(userRepo)
	leadHandler := handlers.NewLeadHandler(createLeadUC, addressUC, statusUC, deleteLeadUC, leadQueries)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	auth := middleware.NewAuth(tokens, userRepo)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Handle)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/failure", authHandler.OAuthFailure)
			r.Get("/{provider}", authHandler.OAuthStart)
			r.Get("/{provider}/callback", authHandler.OAuthCallback)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth)
				r.Get("/verify-token", authHandler.VerifyToken)
				r.Get("/me", authHandler.Me)
				r.Get("/logout", authHandler.Logout)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Use(auth.RequireRole(entity.RoleAdmin))
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.With(auth.RequireRole(entity.RoleAdmin)).Get("/stats", leadHandler.Stats)
			r.Get("/", leadHandler.List)
			r.With(auth.RequireRole(entity.RoleTelecaller)).Post("/", leadHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", leadHandler.Get)
				r.Put("/", leadHandler.UpdateAddress)
				r.Delete("/", leadHandler.Delete)
				r.With(auth.RequireRole(entity.RoleTelecaller)).Put("/status", leadHandler.UpdateStatus)
			})
		})
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 TeleCRM API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
