package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/infra/cache"
	"github.com/hireloop/hireloop-api/internal/infra/database"
	"github.com/hireloop/hireloop-api/internal/infra/http/handlers"
	appmw "github.com/hireloop/hireloop-api/internal/infra/http/middleware"
	"github.com/hireloop/hireloop-api/internal/infra/integration/stripe"
	"github.com/hireloop/hireloop-api/internal/infra/mail"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
	"github.com/hireloop/hireloop-api/internal/infra/worker"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		env("RABBITMQ_USER", "guest"),
		env("RABBITMQ_PASS", "guest"),
		env("RABBITMQ_HOST", "localhost"),
		env("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Redis view cache is optional; without it every read hits Postgres.
	var viewCache *cache.ViewCache
	rdb, err := cache.OpenRedis(context.Background(), os.Getenv("REDIS_ADDR"))
	if err != nil {
		log.Printf("view cache disabled: %v", err)
	} else {
		viewCache = cache.NewViewCache(rdb, 5*time.Minute)
	}

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	callRepo := database.NewCallEventRepository(db)
	subRepo := database.NewSubscriptionRepository(db)
	emailRepo := database.NewInboundEmailRepository(db)

	// 2. Gateways and adapters
	gateway := stripe.NewClient(os.Getenv("STRIPE_SECRET_KEY"), os.Getenv("STRIPE_API_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(env("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	authManager, err := auth.NewManager(os.Getenv("JWT_SECRET"), os.Getenv("JWT_ISSUER"))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Workers
	if viewCache != nil {
		invalidationWorker := queue.NewWorker(rabbitMQ.Ch, viewCache)
		go invalidationWorker.Start(queue.QueueName)
	}

	staleCalls := worker.NewStaleCallWorker(db)
	go staleCalls.Start(context.Background())

	// 4. UseCases
	updateStageUC := usecase.NewUpdateContactStageUseCase(contactRepo, callRepo, producer)
	moveUC := usecase.NewMoveContactUseCase(contactRepo, updateStageUC)
	scheduleUC := usecase.NewScheduleCallUseCase(contactRepo, callRepo, producer)
	checkoutUC := usecase.NewStartCheckoutUseCase(
		subRepo, gateway,
		os.Getenv("STRIPE_PRICE_MONTHLY"), os.Getenv("STRIPE_PRICE_ANNUAL"),
	)
	ingestUC := usecase.NewIngestEmailUseCase(contactRepo, emailRepo, mailSender, producer)

	// 5. Handlers
	contactHandler := handlers.NewContactHandler(contactRepo, moveUC, producer, viewCache)
	pipelineHandler := handlers.NewPipelineHandler(contactRepo, viewCache)
	callHandler := handlers.NewCallHandler(callRepo, scheduleUC, viewCache)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC)
	subHandler := handlers.NewSubscriptionHandler(subRepo)
	emailHandler := handlers.NewInboundEmailHandler(emailRepo, ingestUC, os.Getenv("INBOUND_TOKEN"), viewCache)
	webhookHandler := handlers.NewWebhookHandler(subRepo, os.Getenv("STRIPE_WEBHOOK_SECRET"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, rdb)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/stripe", webhookHandler.Handle)
	r.Post("/inbound-emails/ingest", emailHandler.HandleIngest)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireUser(authManager))

		r.Post("/billing/checkout", checkoutHandler.Handle)
		r.Get("/subscription/status", subHandler.HandleGetStatus)

		r.Get("/contacts", contactHandler.HandleList)
		r.Post("/contacts", contactHandler.HandleCreate)
		r.Patch("/contacts/{contactId}", contactHandler.HandlePatch)
		r.Delete("/contacts/{contactId}", contactHandler.HandleDelete)
		r.Post("/contacts/{contactId}/stage", contactHandler.HandleMoveStage)
		r.Post("/contacts/{contactId}/calls", callHandler.HandleSchedule)

		r.Get("/pipeline", pipelineHandler.HandleBoard)
		r.Get("/calls/upcoming", callHandler.HandleUpcoming)
		r.Get("/inbound-emails", emailHandler.HandleList)
	})

	port := ":" + env("PORT", "8080")
	log.Printf("hireloop api listening on %s", port)
	http.ListenAndServe(port, r)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
