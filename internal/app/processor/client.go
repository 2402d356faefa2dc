package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"travelbook/checkout-relay/internal/models"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/form"
	"github.com/valyala/fasthttp"
)

const sessionsPath = "/v1/checkout/sessions"

// Client talks to the Stripe Checkout Sessions API. It is safe for
// concurrent use and is meant to be created once at startup.
type Client struct {
	baseURL   string
	secretKey string
	timeout   time.Duration
	client    *fasthttp.Client
	logger    *slog.Logger
}

func NewClient(baseURL, secretKey string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("payment processor secret key is empty")
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid payment processor url %q: %w", baseURL, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		timeout:   timeout,
		client: &fasthttp.Client{
			Name:                "checkout-relay",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 90 * time.Second,
		},
		logger: logger.With(slog.String("component", "processor")),
	}, nil
}

func (c *Client) CreateSession(ctx context.Context, session *models.SessionRequest) (*models.Session, error) {
	values := &form.Values{}
	form.AppendTo(values, sessionParams(session))

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + sessionsPath)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString(values.Encode())

	created, err := c.do(ctx, req, resp)
	if err != nil {
		c.logger.Error("failed to create checkout session",
			slog.String("client_reference_id", session.ClientReferenceID),
			slog.Any("err", err))
		return nil, err
	}

	c.logger.Info("checkout session created",
		slog.String("session_id", created.ID),
		slog.String("client_reference_id", session.ClientReferenceID))

	return created, nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, errors.New("session id is empty")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + sessionsPath + "/" + url.PathEscape(id))
	req.Header.SetMethod(http.MethodGet)

	session, err := c.do(ctx, req, resp)
	if err != nil {
		c.logger.Error("failed to retrieve checkout session", slog.String("session_id", id), slog.Any("err", err))
		return nil, err
	}

	return session, nil
}

// CloseIdleConnections releases pooled connections to the processor.
func (c *Client) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("payment processor request not sent: %w", err)
	}

	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.secretKey)
	req.Header.Set("Stripe-Version", stripe.APIVersion)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to reach payment processor: %w", err)
	}

	statusCode := resp.StatusCode()
	body := resp.Body()

	if statusCode < 200 || statusCode >= 300 {
		return nil, decodeError(statusCode, body)
	}

	var session stripe.CheckoutSession
	if err := sonic.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode payment processor response: %w", err)
	}

	return toSession(&session), nil
}

func sessionParams(session *models.SessionRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(session.SuccessURL),
		CancelURL:          stripe.String(session.CancelURL),
		ClientReferenceID:  stripe.String(session.ClientReferenceID),
	}

	for _, item := range session.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}

		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	for key, value := range session.Metadata {
		params.AddMetadata(key, value)
	}

	return params
}

func toSession(session *stripe.CheckoutSession) *models.Session {
	result := &models.Session{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Metadata:      session.Metadata,
	}

	if session.Customer != nil {
		result.CustomerID = session.Customer.ID
	}

	return result
}
