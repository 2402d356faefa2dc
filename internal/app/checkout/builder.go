package checkout

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"time"
	"travelbook/checkout-relay/internal/models"

	"github.com/google/uuid"
)

const (
	packageItemName        = "Travel Package Booking"
	packageItemDescription = "Travel package booking"
	defaultActivityTitle   = "Activity"

	// Stripe substitutes this template with the created session id.
	sessionIDTemplate = "{CHECKOUT_SESSION_ID}"
)

// Builder turns a validated checkout request into the processor-facing
// session request.
type Builder struct {
	currency     string
	siteURL      string
	localOrigins []string

	now      func() time.Time
	newToken func() string
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func WithTokenGenerator(newToken func() string) Option {
	return func(b *Builder) { b.newToken = newToken }
}

func NewBuilder(currency, siteURL string, localOrigins []string, opts ...Option) *Builder {
	b := &Builder{
		currency:     currency,
		siteURL:      siteURL,
		localOrigins: localOrigins,
		now:          time.Now,
		newToken:     func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build assembles line items, redirect URLs and metadata for req. origin is
// the caller's Origin header and only affects the redirect base.
func (b *Builder) Build(req *models.CheckoutRequest, origin string) (*models.SessionRequest, error) {
	checkoutType := req.Type
	if checkoutType == "" {
		checkoutType = models.CheckoutTypePackage
	}

	lineItems, err := b.lineItems(req, checkoutType)
	if err != nil {
		return nil, err
	}

	timestamp := b.now().UnixMilli()
	successURL, cancelURL := b.redirectURLs(req.UserID, checkoutType, timestamp, origin)

	itemCount := len(req.Items)
	if itemCount == 0 {
		itemCount = 1
	}

	return &models.SessionRequest{
		LineItems:         lineItems,
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		ClientReferenceID: req.UserID,
		Metadata: map[string]string{
			"userId":    req.UserID,
			"timestamp": strconv.FormatInt(timestamp, 10),
			"packageId": req.PackageID,
			"type":      checkoutType,
			"itemCount": strconv.Itoa(itemCount),
		},
		Timestamp: timestamp,
	}, nil
}

func (b *Builder) lineItems(req *models.CheckoutRequest, checkoutType string) ([]models.LineItem, error) {
	if checkoutType == models.CheckoutTypeActivityUpgrade && len(req.Items) > 0 {
		items := make([]models.LineItem, 0, len(req.Items))
		for i, item := range req.Items {
			title := item.Title
			if title == "" {
				title = defaultActivityTitle
			}

			quantity := itemQuantity(item)
			unitAmount, err := ToMinorUnits(itemPrice(item))
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}

			items = append(items, models.LineItem{
				Currency:    b.currency,
				Name:        title,
				Description: fmt.Sprintf("Quantity: %d", quantity),
				UnitAmount:  unitAmount,
				Quantity:    quantity,
			})
		}

		return items, nil
	}

	amount := packageAmount(req)
	unitAmount, err := ToMinorUnits(amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return []models.LineItem{{
		Currency:    b.currency,
		Name:        packageItemName,
		Description: packageItemDescription,
		UnitAmount:  unitAmount,
		Quantity:    1,
	}}, nil
}

func (b *Builder) redirectURLs(userID, checkoutType string, timestamp int64, origin string) (string, string) {
	base := b.siteURL
	if origin != "" && slices.Contains(b.localOrigins, origin) {
		base = origin
	}

	query := url.Values{}
	query.Set("token", b.newToken())
	query.Set("user_id", userID)
	query.Set("timestamp", strconv.FormatInt(timestamp, 10))
	query.Set("type", checkoutType)
	encoded := query.Encode()

	successURL := base + "/success.html?session_id=" + sessionIDTemplate + "&" + encoded
	cancelURL := base + "/cancel.html?" + encoded

	return successURL, cancelURL
}

// packageAmount falls back to the cart total when a package checkout carries
// items but no positive amount.
func packageAmount(req *models.CheckoutRequest) float64 {
	if req.Amount != nil && *req.Amount > 0 {
		return *req.Amount
	}

	var total float64
	for _, item := range req.Items {
		total += itemPrice(item) * float64(itemQuantity(item))
	}

	return total
}

// itemQuantity accepts integral JSON numbers in either form, 2 or 2.0.
func itemQuantity(item models.CartItem) int64 {
	if item.Quantity == nil || *item.Quantity < 1 {
		return 1
	}

	return int64(math.Trunc(*item.Quantity))
}

func itemPrice(item models.CartItem) float64 {
	if item.Price == nil {
		return 0
	}

	return *item.Price
}
