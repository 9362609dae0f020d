package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"campaignapi/config"
	"campaignapi/handlers"
	"campaignapi/middleware"
	"campaignapi/notify"
	"campaignapi/payment"
	"campaignapi/store"
)

// Register wires stores and services into handlers and mounts every route.
// provider and subs are nil when Stripe is unconfigured; redisClient is nil
// when no store is configured.
func Register(
	r *gin.Engine,
	cfg *config.Config,
	redisClient *redis.Client,
	provider payment.CheckoutProvider,
	subs payment.SubscriptionMetadataFetcher,
	dispatcher *notify.Dispatcher,
) {
	ledger := store.NewLedger(redisClient)
	subscribers := store.NewNewsletter(redisClient)
	limiter := middleware.NewRateLimiter(redisClient)

	checkout := handlers.NewCheckoutHandler(provider)
	webhook := handlers.NewStripeWebhookHandler(cfg.StripeWebhookSecret, ledger, subs, dispatcher)
	donors := handlers.NewDonorCountHandler(ledger)
	newsletter := handlers.NewNewsletterHandler(subscribers)
	forms := handlers.NewFormsHandler(dispatcher, cfg.SupportEmail, cfg.EndorsementEmail)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/checkout", limiter.Limit("checkout", 10, time.Minute), checkout.CreateCheckout)
		api.GET("/checkout/session", limiter.Limit("checkout-read", 30, time.Minute), checkout.GetSessionSummary)

		// Signature verification is the webhook's gate, not the limiter.
		api.POST("/webhooks/stripe", webhook.HandleWebhook)

		api.GET("/donors/count", limiter.Limit("donor-count", 60, time.Minute), donors.GetCount)

		api.POST("/newsletter", limiter.Limit("newsletter", 5, time.Minute), newsletter.Subscribe)
		api.GET("/newsletter", newsletter.Count)

		api.POST("/contact", limiter.Limit("contact", 5, time.Minute), forms.Contact)
		api.POST("/endorse", limiter.Limit("endorse", 5, time.Minute), forms.Endorse)
	}
}
