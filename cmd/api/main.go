package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"checkout-customizer-layer/internal/application"
	"checkout-customizer-layer/internal/application/webhook_handlers"
	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/function"
	apiinfra "checkout-customizer-layer/internal/infrastructure/api"
	"checkout-customizer-layer/internal/infrastructure/encryption"
	redisinfra "checkout-customizer-layer/internal/infrastructure/redis"
	"checkout-customizer-layer/internal/infrastructure/repository"
	shopifyinfra "checkout-customizer-layer/internal/infrastructure/shopify"
	"checkout-customizer-layer/internal/metrics"
	"checkout-customizer-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/time/rate"

	custommiddleware "checkout-customizer-layer/internal/infrastructure/middleware"
)

const oauthSessionTTL = 10 * time.Minute

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	apiKey := os.Getenv("SHOPIFY_API_KEY")
	apiSecret := os.Getenv("SHOPIFY_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		logger.Fatal().Msg("SHOPIFY_API_KEY and SHOPIFY_API_SECRET environment variables are required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Connect to Redis (OAuth session state)
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Get encryption key
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	// Initialize repositories
	customizationRepo := repository.NewMongoCustomizationRepository(db)
	shopRepo := repository.NewMongoShopRepository(db)
	functionRunRepo := repository.NewMongoFunctionRunRepository(db)
	sessionStore := redisinfra.NewSessionStore(redisClient, oauthSessionTTL)

	// Initialize Shopify admin client
	shopifyClient := shopifyinfra.NewClient(apiKey, apiSecret, logger)

	// Initialize metrics
	m := metrics.New()

	// Initialize the checkout function runner
	runnerOpts := function.DefaultOptions()
	runnerOpts.UseConfiguredPaymentTarget = os.Getenv("USE_CONFIGURED_PAYMENT_TARGET") == "true"
	if title := os.Getenv("HIDDEN_DELIVERY_TITLE"); title != "" {
		runnerOpts.HiddenDeliveryTitle = title
	}
	runner := function.NewRunner(logger, runnerOpts)

	// Initialize application services
	shopService := application.NewShopService(
		shopRepo,
		encryptionService,
		shopifyClient,
		logger,
		appURL,
	)

	customizationService := application.NewCustomizationService(
		customizationRepo,
		shopService,
		shopifyClient,
		m,
		logger,
	)

	functionService := application.NewFunctionService(
		runner,
		functionRunRepo,
		m,
		logger,
	)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(logger)
	webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, shopService, customizationService))
	webhookDispatcher.RegisterHandler(webhook_handlers.NewShopUpdateHandler(logger))

	// Initialize HTTP handlers
	functionHandler := apiinfra.NewFunctionHandler(functionService, logger)
	customizationHandler := apiinfra.NewCustomizationHandler(customizationService, functionService, logger)
	sessionTokenVerifier := shopifyinfra.NewSessionTokenVerifier(apiKey, apiSecret)

	// Per-IP rate limiting for the public function endpoints
	functionRateLimiter := custommiddleware.NewRateLimiter(context.Background(), rate.Limit(20), 40, time.Minute, 5*time.Minute)
	defer functionRateLimiter.Shutdown()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.SecurityHeadersMiddleware())
	r.Use(custommiddleware.MetricsMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	// Function run endpoints (public, rate limited)
	r.Group(func(r chi.Router) {
		r.Use(functionRateLimiter.Middleware())
		r.Post("/functions/payment-customization/run", functionHandler.HidePayment)
		r.Post("/functions/payment-rename/run", functionHandler.RenamePayment)
		r.Post("/functions/delivery-customization/run", functionHandler.HideDelivery)
	})

	// OAuth routes
	r.Get("/auth/shopify", oauthInitHandler(sessionStore, shopService, logger))
	r.Get("/auth/callback", oauthCallbackHandler(sessionStore, shopService, logger))

	// Webhook endpoint
	r.Post("/webhooks/shopify", webhookHandler(webhookDispatcher, m, apiSecret, logger))

	// Admin API (session-token authenticated)
	r.Group(func(r chi.Router) {
		r.Use(custommiddleware.SessionTokenMiddleware(sessionTokenVerifier, logger))
		r.Get("/api/v1/customizations/{shop}", customizationHandler.Get)
		r.Put("/api/v1/customizations/{shop}", customizationHandler.Put)
		r.Delete("/api/v1/customizations/{shop}", customizationHandler.Delete)
		r.Get("/api/v1/customizations/{shop}/runs", customizationHandler.ListRuns)
		r.Get("/api/v1/products/{shop}", customizationHandler.Products)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func requestedScopes() []string {
	raw := os.Getenv("SHOPIFY_SCOPES")
	if raw == "" {
		return []string{"read_products", "write_payment_customizations", "write_delivery_customizations"}
	}
	parts := strings.Split(raw, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// oauthInitHandler initiates the OAuth flow
func oauthInitHandler(sessionStore ports.SessionStore, shopService *application.ShopService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		if shop == "" {
			http.Error(w, "shop parameter is required", http.StatusBadRequest)
			return
		}
		if !strings.HasSuffix(shop, ".myshopify.com") {
			http.Error(w, "invalid shop domain", http.StatusBadRequest)
			return
		}

		// Generate random state for CSRF protection
		stateBytes := make([]byte, 16)
		if _, err := rand.Read(stateBytes); err != nil {
			logger.Error().Err(err).Msg("Failed to generate state")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		state := hex.EncodeToString(stateBytes)

		scopes := requestedScopes()

		session := &domain.Session{
			Shop:      shop,
			State:     state,
			Scopes:    scopes,
			ReturnURL: r.URL.Query().Get("return_url"),
			ExpiresAt: time.Now().Add(oauthSessionTTL),
			CreatedAt: time.Now(),
		}

		if err := sessionStore.SaveSession(ctx, session); err != nil {
			logger.Error().Err(err).Msg("Failed to save OAuth session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		authURL, err := shopService.GenerateAuthURL(ctx, shop, scopes, state)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// oauthCallbackHandler handles the OAuth callback
func oauthCallbackHandler(sessionStore ports.SessionStore, shopService *application.ShopService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if shop == "" || code == "" || state == "" {
			http.Error(w, "Missing required parameters", http.StatusBadRequest)
			return
		}

		// Verify state against the stored session
		session, err := sessionStore.GetSession(ctx, state)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get OAuth session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if session == nil || session.Shop != shop {
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}

		// One-shot: the state cannot be replayed.
		if err := sessionStore.DeleteSession(ctx, state); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete OAuth session")
		}

		installedShop, err := shopService.ExchangeToken(ctx, shop, code, session.Scopes)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to exchange token")
			http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
			return
		}

		if err := shopService.EnsureWebhooks(ctx, installedShop.Domain); err != nil {
			// Installation succeeded; webhook registration can be retried.
			logger.Error().Err(err).Str("shop", installedShop.Domain).Msg("Failed to register webhooks")
		}

		returnURL := session.ReturnURL
		if returnURL == "" {
			returnURL = fmt.Sprintf("https://%s/admin/apps", installedShop.Domain)
		}

		redirectURL := fmt.Sprintf("%s?installed=true&shop=%s", returnURL, url.QueryEscape(installedShop.Domain))
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// webhookHandler handles Shopify webhook requests
func webhookHandler(
	webhookDispatcher *application.WebhookDispatcher,
	m *metrics.Metrics,
	apiSecret string,
	logger zerolog.Logger,
) http.HandlerFunc {
	webhookVerifier := shopifyinfra.NewWebhookVerifier(apiSecret)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Get webhook topic from header
		topic := r.Header.Get("X-Shopify-Topic")
		if topic == "" {
			logger.Warn().Msg("Missing X-Shopify-Topic header")
			http.Error(w, "Missing X-Shopify-Topic header", http.StatusBadRequest)
			return
		}

		// Read request body
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		// Verify webhook signature
		hmacHeader := r.Header.Get("X-Shopify-Hmac-SHA256")
		if err := webhookVerifier.Verify(payload, hmacHeader); err != nil {
			logger.Warn().Err(err).Str("topic", topic).Msg("Webhook signature verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		shop := r.Header.Get("X-Shopify-Shop-Domain")
		if shop == "" {
			var webhookData map[string]interface{}
			if err := json.Unmarshal(payload, &webhookData); err == nil {
				if d, ok := webhookData["myshopify_domain"].(string); ok {
					shop = d
				} else if d, ok := webhookData["domain"].(string); ok {
					shop = d
				}
			}
		}

		m.WebhooksTotal.WithLabelValues(topic).Inc()

		event := &domain.WebhookEvent{
			Topic:    topic,
			Shop:     shop,
			Payload:  payload,
			Verified: true,
		}

		// Dispatch to handlers
		if err := webhookDispatcher.Dispatch(ctx, event); err != nil {
			logger.Error().
				Err(err).
				Str("topic", topic).
				Str("shop", shop).
				Msg("Failed to dispatch webhook event")

			// Return 500 to trigger Shopify retry
			http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"received": "true",
		})
	}
}
