package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alumni-network/backend/internal/accesspolicy"
	companyhandler "alumni-network/backend/internal/company/handler"
	companyrepo "alumni-network/backend/internal/company/repository"
	"alumni-network/backend/internal/config"
	"alumni-network/backend/internal/db"
	healthhandler "alumni-network/backend/internal/health/handler"
	identityhandler "alumni-network/backend/internal/identity/handler"
	identityrepo "alumni-network/backend/internal/identity/repository"
	identitysvc "alumni-network/backend/internal/identity/service"
	invitationhandler "alumni-network/backend/internal/invitation/handler"
	invitationrepo "alumni-network/backend/internal/invitation/repository"
	invitationsvc "alumni-network/backend/internal/invitation/service"
	"alumni-network/backend/internal/notification"
	"alumni-network/backend/internal/notification/resend"
	posthandler "alumni-network/backend/internal/post/handler"
	postrepo "alumni-network/backend/internal/post/repository"
	postsvc "alumni-network/backend/internal/post/service"
	"alumni-network/backend/internal/security"
	"alumni-network/backend/internal/server"
	sessionhandler "alumni-network/backend/internal/session/handler"
	sessionsvc "alumni-network/backend/internal/session/service"
	"alumni-network/backend/internal/telemetry"
	telemetryotel "alumni-network/backend/internal/telemetry/otel"
	"alumni-network/backend/internal/telemetry/producer"
	userhandler "alumni-network/backend/internal/user/handler"
	userrepo "alumni-network/backend/internal/user/repository"
	usersvc "alumni-network/backend/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("jwt private key: %v", err)
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt public key: %v", err)
	}
	tokens := security.NewTokenProvider(privateKey, publicKey,
		cfg.JWTIssuer, cfg.JWTAudience, cfg.IDTokenTTLDuration(), cfg.SessionTTLDuration())

	ctx := context.Background()
	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, "alumni-backend", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	emitters := telemetry.MultiEmitter{telemetryotel.NewEventEmitter(providers.LoggerProvider)}
	kafkaProducer, err := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}
	if kafkaProducer != nil {
		emitters = append(emitters, kafkaProducer)
		defer kafkaProducer.Close()
	}

	var sender notification.Sender = notification.DevLogSender{}
	if cfg.ResendAPIKey != "" {
		sender = resend.New(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.EmailFrom)
	}

	issuer := identitysvc.NewIssuer(
		identityrepo.NewPostgresAccountRepository(database),
		security.NewHasher(cfg.BcryptCost), tokens)
	gateway := sessionsvc.NewGateway(issuer)

	invitations := invitationsvc.NewService(
		invitationrepo.NewPostgresInvitationRepository(database),
		sender, cfg.AppURL, cfg.AdminEmail)
	members := usersvc.NewService(
		userrepo.NewPostgresProfileRepository(database), invitations, issuer)
	posts := postsvc.NewService(
		postrepo.NewPostgresPostRepository(database), members, sender, cfg.AppURL)

	policy, err := accesspolicy.NewOPAEvaluator(accesspolicy.DefaultRoutes())
	if err != nil {
		log.Fatalf("access policy: %v", err)
	}

	router := server.New(server.Deps{
		Gateway:      gateway,
		AccessPolicy: policy,
		Emitter:      emitters,
		Credentials:  identityhandler.NewHandler(issuer),
		Sessions:     sessionhandler.NewHandler(gateway, cfg.IsProduction()),
		Invitations:  invitationhandler.NewHandler(invitations, members, cfg.AdminEmail),
		Members:      userhandler.NewHandler(members),
		Posts:        posthandler.NewHandler(posts),
		Companies:    companyhandler.NewHandler(companyrepo.NewPostgresCompanyRepository(database), members, cfg.AdminEmail),
		Health:       healthhandler.NewHandler(database, policy),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	// Let in-flight async telemetry emits finish before tearing down providers.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}
