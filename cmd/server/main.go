// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/brokerbridge-backend/internal/controller"
	"github.com/unclebandit/brokerbridge-backend/internal/db"
	"github.com/unclebandit/brokerbridge-backend/internal/enrichment"
	"github.com/unclebandit/brokerbridge-backend/internal/generation"
	"github.com/unclebandit/brokerbridge-backend/internal/handler"
	"github.com/unclebandit/brokerbridge-backend/internal/queue"
	"github.com/unclebandit/brokerbridge-backend/internal/repository"
	"github.com/unclebandit/brokerbridge-backend/internal/service"
	"github.com/unclebandit/brokerbridge-backend/internal/transport"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	candidateRepo := &repository.CandidateRepository{DB: db.DB}
	templateRepo := &repository.TemplateRepository{DB: db.DB}
	activityRepo := &repository.ActivityRepository{DB: db.DB}
	blacklistRepo := &repository.BlacklistRepository{DB: db.DB}
	engagementRepo := &repository.EngagementRepository{DB: db.DB}

	llm, err := generation.FromEnv(context.Background())
	if err != nil {
		log.Fatal("failed to configure generation client:", err)
	}
	generator := generation.NewGenerator(llm)

	outreachService := &service.OutreachService{
		Candidates: candidateRepo,
		Templates:  templateRepo,
		Activity:   activityRepo,
		Resolver:   enrichment.NewResolver(nil),
		Generator:  generator,
		Email:      transport.EmailFromEnv(),
		SMS:        transport.SMSFromEnv(),
		Identity: service.SenderIdentity{
			FromName:  os.Getenv("MAIL_FROM_NAME"),
			FromEmail: os.Getenv("MAIL_FROM_EMAIL"),
			SMSFrom:   os.Getenv("SMS_FROM"),
		},
	}

	templateService := &service.TemplateService{
		Templates: templateRepo,
		Generator: generator,
	}

	sourcingService := service.NewSourcingService(candidateRepo, blacklistRepo, activityRepo)

	webhookService := &service.WebhookService{
		Candidates:  candidateRepo,
		Templates:   templateRepo,
		Activity:    activityRepo,
		Engagements: engagementRepo,
	}

	// Triggers go to RabbitMQ when configured, so the standalone worker
	// consumes them; otherwise the in-process queue handles them.
	var q queue.Queue
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpQueue, err := queue.NewAmqpQueue(amqpURL)
		if err != nil {
			log.Fatal("failed to connect to queue:", err)
		}
		q = amqpQueue
	} else {
		mem := queue.NewInMemoryQueue()
		queue.StartOutreachSubscriber(mem, outreachService)
		q = mem
	}

	outreachController := &controller.OutreachController{
		OutreachService: outreachService,
		Candidates:      candidateRepo,
		Activity:        activityRepo,
		Queue:           q,
	}
	templateController := &controller.TemplateController{
		TemplateService: templateService,
	}
	sourcingController := &controller.SourcingController{
		SourcingService: sourcingService,
		Blacklist:       blacklistRepo,
	}
	webhookHandler := &handler.EngagementWebhookHandler{
		Ingestor: webhookService,
	}

	r := chi.NewRouter()

	// Candidate + outreach routes
	r.Get("/candidates", outreachController.ListCandidates)
	r.Get("/candidates/{id}", outreachController.GetCandidate)
	r.Get("/candidates/{id}/activity", outreachController.GetCandidateActivity)
	r.Post("/candidates/{id}/outreach", outreachController.TriggerOutreach)
	r.Post("/candidates/{id}/resend", outreachController.Resend)
	r.Get("/stats/funnel", outreachController.GetFunnelStats)

	// Template performance routes
	r.Get("/templates", templateController.ListTemplates)
	r.Get("/templates/{id}/report", templateController.GetTemplateReport)
	r.Post("/templates/{id}/optimize", templateController.Optimize)
	r.Post("/templates/{id}/suggestions/{index}/apply", templateController.ApplySuggestion)
	r.Delete("/templates/{id}/suggestions", templateController.DismissSuggestions)

	// Sourcing batch routes
	r.Post("/batches", sourcingController.CreateBatch)
	r.Get("/batches/{id}", sourcingController.GetBatch)
	r.Post("/batches/{id}/results", sourcingController.AddSearchResults)
	r.Post("/batches/{id}/items/{itemID}/approve", sourcingController.ApproveItem)
	r.Post("/batches/{id}/items/{itemID}/dismiss", sourcingController.DismissItem)
	r.Post("/batches/{id}/approve-all", sourcingController.ApproveAll)
	r.Post("/batches/{id}/dismiss-all", sourcingController.DismissAll)
	r.Get("/blacklist", sourcingController.ListBlacklist)
	r.Delete("/blacklist/{id}", sourcingController.Revive)

	// Delivery-provider callbacks
	r.Post("/webhooks/engagement", webhookHandler.Receive)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
