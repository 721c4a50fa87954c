package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"checkout-customizer-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// The configuration document lives in a single shop-scoped JSON metafield,
// matching what the checkout functions resolve at run time.
const (
	ConfigMetafieldNamespace = "cart"
	ConfigMetafieldKey       = "hide_payment"
)

type client struct {
	apiKey    string
	apiSecret string
	app       goshopify.App
	logger    zerolog.Logger
}

// NewClient creates a new Shopify admin client adapter
func NewClient(apiKey, apiSecret string, logger zerolog.Logger) ports.ShopifyClient {
	app := goshopify.App{
		ApiKey:    apiKey,
		ApiSecret: apiSecret,
	}
	return &client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		app:       app,
		logger:    logger,
	}
}

// createClient is a helper to create a goshopify client
func (c *client) createClient(shopDomain string, accessToken string) (*goshopify.Client, error) {
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Authentication methods

func (c *client) GenerateAuthURL(shop string, scopes []string, redirectURI string, state string) (string, error) {
	// Shopify expects scopes comma-separated, no spaces.
	scopesStr := strings.Join(scopes, ",")

	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shop,
		c.apiKey,
		url.QueryEscape(scopesStr),
		url.QueryEscape(redirectURI),
		url.QueryEscape(state),
	)

	c.logger.Info().
		Str("shop", shop).
		Strs("scopes", scopes).
		Msg("Generated OAuth authorization URL")

	return authURL, nil
}

func (c *client) ExchangeToken(ctx context.Context, shop string, code string, redirectURI string) (string, error) {
	// Shopify requires redirect_uri to match the one used in authorization.
	// The go-shopify GetAccessToken doesn't expose redirect_uri, so when one
	// is supplied we call the token endpoint directly.
	if redirectURI != "" {
		tokenURL := fmt.Sprintf("https://%s/admin/oauth/access_token", shop)

		values := url.Values{}
		values.Set("client_id", c.apiKey)
		values.Set("client_secret", c.apiSecret)
		values.Set("code", code)
		values.Set("redirect_uri", redirectURI)

		req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(values.Encode()))
		if err != nil {
			return "", fmt.Errorf("failed to create token request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to exchange token: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			return "", fmt.Errorf("failed to exchange token: status %d, body: %s", resp.StatusCode, string(bodyBytes))
		}

		var tokenResponse struct {
			AccessToken string `json:"access_token"`
			Scope       string `json:"scope"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
			return "", fmt.Errorf("failed to decode token response: %w", err)
		}

		return tokenResponse.AccessToken, nil
	}

	token, err := c.app.GetAccessToken(ctx, shop, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange token: %w", err)
	}
	return token, nil
}

// Shop API

func (c *client) GetShop(ctx context.Context, shopDomain string, accessToken string) (*goshopify.Shop, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	shop, err := client.Shop.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

// Configuration metafield

// findConfigMetafield locates the existing configuration metafield, if any.
func (c *client) findConfigMetafield(ctx context.Context, client *goshopify.Client) (*goshopify.Metafield, error) {
	metafields, err := client.Metafield.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list metafields: %w", err)
	}
	for i := range metafields {
		if metafields[i].Namespace == ConfigMetafieldNamespace && metafields[i].Key == ConfigMetafieldKey {
			return &metafields[i], nil
		}
	}
	return nil, nil
}

func (c *client) SetConfigMetafield(ctx context.Context, shopDomain string, accessToken string, value string) error {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return err
	}

	existing, err := c.findConfigMetafield(ctx, client)
	if err != nil {
		return err
	}

	metafield := goshopify.Metafield{
		Namespace: ConfigMetafieldNamespace,
		Key:       ConfigMetafieldKey,
		Type:      "json",
		Value:     value,
	}

	if existing != nil {
		metafield.Id = existing.Id
		if _, err := client.Metafield.Update(ctx, metafield); err != nil {
			return fmt.Errorf("failed to update config metafield: %w", err)
		}
	} else {
		if _, err := client.Metafield.Create(ctx, metafield); err != nil {
			return fmt.Errorf("failed to create config metafield: %w", err)
		}
	}

	c.logger.Info().
		Str("shop", shopDomain).
		Str("namespace", ConfigMetafieldNamespace).
		Str("key", ConfigMetafieldKey).
		Msg("Wrote configuration metafield")

	return nil
}

func (c *client) DeleteConfigMetafield(ctx context.Context, shopDomain string, accessToken string) error {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return err
	}

	existing, err := c.findConfigMetafield(ctx, client)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := client.Metafield.Delete(ctx, existing.Id); err != nil {
		return fmt.Errorf("failed to delete config metafield: %w", err)
	}

	return nil
}

// Product API

func (c *client) GetProducts(ctx context.Context, shopDomain string, accessToken string, options interface{}) ([]goshopify.Product, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	products, err := client.Product.List(ctx, options)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Webhook API

func (c *client) CreateWebhook(ctx context.Context, shopDomain string, accessToken string, topic string, address string) (*goshopify.Webhook, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhook := goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	}
	created, err := client.Webhook.Create(ctx, webhook)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	return created, nil
}

func (c *client) ListWebhooks(ctx context.Context, shopDomain string, accessToken string, options interface{}) ([]goshopify.Webhook, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	webhooks, err := client.Webhook.List(ctx, options)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	return webhooks, nil
}

func (c *client) DeleteWebhook(ctx context.Context, shopDomain string, accessToken string, webhookID uint64) error {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return err
	}
	if err := client.Webhook.Delete(ctx, webhookID); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}
