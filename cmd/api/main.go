package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/config"
	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/database"
	"github.com/justtry/crm/internal/infra/http/handlers"
	"github.com/justtry/crm/internal/infra/http/middleware"
	"github.com/justtry/crm/internal/infra/integration/blandai"
	"github.com/justtry/crm/internal/infra/integration/cibil"
	"github.com/justtry/crm/internal/infra/integration/razorpay"
	"github.com/justtry/crm/internal/infra/mail"
	"github.com/justtry/crm/internal/infra/queue"
	"github.com/justtry/crm/internal/logger"
	"github.com/justtry/crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Setup(cfg.LogLevel)

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	// RabbitMQ is optional: without it status changes still work, only the
	// follow-up tasks are skipped.
	var rabbitMQ *queue.RabbitMQ
	var producer usecase.FollowUpProducer
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq connection failed")
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Ch)
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, follow-up tasks disabled")
	}

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	userRepo := database.NewUserRepository(db)
	taskRepo := database.NewTaskRepository(db)

	// Gateways and adapters
	gateway := razorpay.NewClient(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret,
		cfg.Razorpay.AccountNumber, cfg.Razorpay.BaseURL,
	)
	calls := blandai.NewClient(cfg.BlandAIKey, "")
	bureau := cibil.NewMockClient()
	mailSender := mail.NewEmailSender(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From,
	)

	// Worker consuming follow-up events
	if rabbitMQ != nil {
		worker := queue.NewWorker(rabbitMQ.Ch, taskRepo)
		go worker.Start(queue.QueueName)
	}

	// Use cases
	changeStatusUC := usecase.NewChangeStatusUseCase(leadRepo, calls, mailSender, producer)
	creditCheckUC := usecase.NewRecordCreditCheckUseCase(leadRepo, bureau)
	disburseUC := usecase.NewDisburseUseCase(leadRepo, gateway)
	submitBankUC := usecase.NewSubmitBankDetailsUseCase(leadRepo)
	verifyBankUC := usecase.NewVerifyBankDetailsUseCase(leadRepo)
	customEmailUC := usecase.NewSendCustomEmailUseCase(leadRepo, mailSender)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	assignLeadUC := usecase.NewAssignLeadUseCase(leadRepo)

	// Handlers
	auth := middleware.NewAuth(cfg.JWTSecret)
	leadHandler := handlers.NewLeadHandler(createLeadUC, assignLeadUC, leadRepo, userRepo)
	workflowHandler := handlers.NewWorkflowHandler(changeStatusUC, creditCheckUC, customEmailUC)
	disbHandler := handlers.NewDisbursementHandler(disburseUC, submitBankUC, verifyBankUC)
	userHandler := handlers.NewUserHandler(userRepo, auth)
	taskHandler := handlers.NewTaskHandler(taskRepo)

	var rabbitConn *amqp.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.RazorpayConfigured())

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", leadHandler.Create)
			r.Get("/", leadHandler.List)
			r.Get("/{id}", leadHandler.Get)
			r.Put("/{id}/assign", leadHandler.Assign)
			r.Post("/{id}/status", workflowHandler.ChangeStatus)
			r.Post("/{id}/credit-check", workflowHandler.CreditCheck)
			r.Post("/{id}/email", workflowHandler.SendEmail)
			r.Post("/{id}/bank-details", disbHandler.SubmitBankDetails)
			r.Post("/{id}/documents", leadHandler.AddDocument)
			r.Delete("/{id}/documents/{name}", leadHandler.RemoveDocument)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(entity.RoleBackOffice, entity.RoleAdmin))
				r.Post("/{id}/bank-details/verify", disbHandler.VerifyBankDetails)
				r.Post("/{id}/disburse", disbHandler.Disburse)
			})
		})

		r.Get("/tasks", taskHandler.List)

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleAdmin))
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
		})
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("CRM API listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
