package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"campaignapi/config"
	"campaignapi/logger"
	"campaignapi/notify"
	"campaignapi/payment"
	"campaignapi/routes"
	"campaignapi/store"
)

func main() {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.AppEnv)
	defer logger.Log.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Every client is constructed once here and injected. A missing
	// integration means a nil handle and a per-feature 503 or fallback,
	// never a repeated env lookup at request time.
	redisClient := store.NewRedisClient(cfg.RedisURL)

	var provider payment.CheckoutProvider
	var subs payment.SubscriptionMetadataFetcher
	if cfg.StripeSecretKey != "" {
		stripeCheckout := payment.NewStripeCheckout(cfg.StripeSecretKey, cfg.SiteURL)
		provider = stripeCheckout
		subs = stripeCheckout
	} else {
		logger.Log.Warn("STRIPE_SECRET_KEY not set; checkout endpoints will answer 503")
	}

	var emailSender notify.EmailSender
	if smtp, err := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFromName); err != nil {
		logger.Log.Warn("email not configured; receipts and form relays are disabled", zap.Error(err))
	} else {
		emailSender = smtp
	}
	slackNotifier := notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackDonationChannel)
	dispatcher := notify.NewDispatcher(emailSender, slackNotifier, cfg.DonationNotifyEmails)

	router := gin.New()
	router.Use(logger.RequestLogger(), gin.Recovery())
	routes.Register(router, cfg, redisClient, provider, subs, dispatcher)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("campaign API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown error", zap.Error(err))
	}
	// Let in-flight notification dispatches flush before exit.
	dispatcher.Wait()
}
