package checkout

import (
	"net/url"
	"strings"
	"testing"
	"time"
	"travelbook/checkout-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1760000000123)

func newTestBuilder() *Builder {
	return NewBuilder(
		"gbp",
		"https://www.example-travel.com",
		[]string{"http://localhost:3000", "http://127.0.0.1:5500"},
		WithClock(func() time.Time { return fixedNow }),
		WithTokenGenerator(func() string { return "tok-1" }),
	)
}

func ptr[T any](v T) *T { return &v }

func TestBuild_ActivityUpgrade(t *testing.T) {
	req := &models.CheckoutRequest{
		UserID: "user-1",
		Type:   models.CheckoutTypeActivityUpgrade,
		Items: []models.CartItem{
			{Title: "Safari", Quantity: ptr(2.0), Price: ptr(49.99)},
			{},
		},
	}

	session, err := newTestBuilder().Build(req, "")
	require.NoError(t, err)
	require.Len(t, session.LineItems, 2)

	assert.Equal(t, models.LineItem{
		Currency:    "gbp",
		Name:        "Safari",
		Description: "Quantity: 2",
		UnitAmount:  4999,
		Quantity:    2,
	}, session.LineItems[0])

	assert.Equal(t, models.LineItem{
		Currency:    "gbp",
		Name:        "Activity",
		Description: "Quantity: 1",
		UnitAmount:  0,
		Quantity:    1,
	}, session.LineItems[1])

	assert.Equal(t, "2", session.Metadata["itemCount"])
	assert.Equal(t, "activity_upgrade", session.Metadata["type"])
}

func TestBuild_PackageFromAmount(t *testing.T) {
	req := &models.CheckoutRequest{UserID: "user-1", Amount: ptr(120.5)}

	session, err := newTestBuilder().Build(req, "")
	require.NoError(t, err)
	require.Len(t, session.LineItems, 1)

	item := session.LineItems[0]
	assert.Equal(t, "Travel Package Booking", item.Name)
	assert.Equal(t, int64(12050), item.UnitAmount)
	assert.Equal(t, int64(1), item.Quantity)

	assert.Equal(t, map[string]string{
		"userId":    "user-1",
		"timestamp": "1760000000123",
		"packageId": "",
		"type":      "package",
		"itemCount": "1",
	}, session.Metadata)
	assert.Equal(t, "user-1", session.ClientReferenceID)
	assert.Equal(t, int64(1760000000123), session.Timestamp)
}

func TestBuild_ActivityUpgradeWithoutItemsUsesAmount(t *testing.T) {
	req := &models.CheckoutRequest{UserID: "u", Type: models.CheckoutTypeActivityUpgrade, Amount: ptr(15.0)}

	session, err := newTestBuilder().Build(req, "")
	require.NoError(t, err)
	require.Len(t, session.LineItems, 1)
	assert.Equal(t, "Travel Package Booking", session.LineItems[0].Name)
	assert.Equal(t, int64(1500), session.LineItems[0].UnitAmount)
}

func TestBuild_PackageWithItemsAndNoAmountUsesCartTotal(t *testing.T) {
	req := &models.CheckoutRequest{
		UserID:    "u",
		PackageID: "pkg-9",
		Items: []models.CartItem{
			{Title: "Hotel", Quantity: ptr(3.0), Price: ptr(100.1)},
			{Title: "Transfer", Price: ptr(20.0)},
		},
	}

	session, err := newTestBuilder().Build(req, "")
	require.NoError(t, err)
	require.Len(t, session.LineItems, 1)
	assert.Equal(t, int64(32030), session.LineItems[0].UnitAmount)
	assert.Equal(t, "2", session.Metadata["itemCount"])
	assert.Equal(t, "pkg-9", session.Metadata["packageId"])
}

func TestBuild_PackageWithZeroAmountUsesCartTotal(t *testing.T) {
	req := &models.CheckoutRequest{
		UserID: "u",
		Amount: ptr(0.0),
		Items:  []models.CartItem{{Title: "Hotel", Quantity: ptr(2.0), Price: ptr(75.5)}},
	}

	session, err := newTestBuilder().Build(req, "")
	require.NoError(t, err)
	require.Len(t, session.LineItems, 1)
	assert.Equal(t, int64(15100), session.LineItems[0].UnitAmount)
}

func TestBuild_RedirectURLs(t *testing.T) {
	req := &models.CheckoutRequest{UserID: "user 1&x", Amount: ptr(10.0)}

	session, err := newTestBuilder().Build(req, "https://evil.test")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(session.SuccessURL,
		"https://www.example-travel.com/success.html?session_id={CHECKOUT_SESSION_ID}&"))
	require.True(t, strings.HasPrefix(session.CancelURL, "https://www.example-travel.com/cancel.html?"))

	success, err := url.Parse(session.SuccessURL)
	require.NoError(t, err)
	query := success.Query()
	assert.Equal(t, "tok-1", query.Get("token"))
	assert.Equal(t, "user 1&x", query.Get("user_id"))
	assert.Equal(t, "1760000000123", query.Get("timestamp"))
	assert.Equal(t, "package", query.Get("type"))

	cancel, err := url.Parse(session.CancelURL)
	require.NoError(t, err)
	assert.Equal(t, "user 1&x", cancel.Query().Get("user_id"))
	assert.Empty(t, cancel.Query().Get("session_id"))
}

func TestBuild_LocalOriginRedirectsBackToOrigin(t *testing.T) {
	req := &models.CheckoutRequest{UserID: "u", Amount: ptr(10.0)}

	session, err := newTestBuilder().Build(req, "http://127.0.0.1:5500")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.SuccessURL, "http://127.0.0.1:5500/success.html?"))
	assert.True(t, strings.HasPrefix(session.CancelURL, "http://127.0.0.1:5500/cancel.html?"))
}

func TestNewBuilder_DefaultTokenIsUnique(t *testing.T) {
	b := NewBuilder("gbp", "https://site.test", nil)
	req := &models.CheckoutRequest{UserID: "u", Amount: ptr(1.0)}

	first, err := b.Build(req, "")
	require.NoError(t, err)
	second, err := b.Build(req, "")
	require.NoError(t, err)

	firstURL, _ := url.Parse(first.CancelURL)
	secondURL, _ := url.Parse(second.CancelURL)
	assert.NotEmpty(t, firstURL.Query().Get("token"))
	assert.NotEqual(t, firstURL.Query().Get("token"), secondURL.Query().Get("token"))
}
