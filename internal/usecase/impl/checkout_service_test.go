package impl

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	domainerrors "readreach/internal/domain/errors"
	"readreach/internal/domain/service"
	mockSvc "readreach/internal/mocks/service"
	"readreach/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"19.99", 1999},
		{"20", 2000},
		{"0.99", 99},
		{".99", 99},
		{"19.9", 1990},
		{"19.999", 1999},
		{" 7.50 ", 750},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got, err := toMinorUnits(tt.price)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinorUnits_Rejected(t *testing.T) {
	tests := []string{"", "free", "-5", "+5", "0", "0.00", "19.9x", "1,99", strings.Repeat("9", 18)}

	for _, price := range tests {
		t.Run(price, func(t *testing.T) {
			_, err := toMinorUnits(price)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
		})
	}
}

func TestCheckoutService_CreateSession(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	ctx := context.Background()

	var req *service.CheckoutRequest
	mockGateway.EXPECT().
		CreateCheckoutSession(ctx, mock.AnythingOfType("*service.CheckoutRequest")).
		Run(func(_ context.Context, r *service.CheckoutRequest) {
			req = r
		}).
		Return(&service.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil)

	out, err := svc.CreateSession(ctx, &usecase.CreateCheckoutInput{
		OrderName: "The Go Programming Language",
		Email:     "reader@example.com",
		Price:     "19.99",
		BookID:    "665f1f77bcf86cd799439011",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", out.SessionID)
	assert.NotEmpty(t, out.URL)

	require.NotNil(t, req)
	assert.Equal(t, int64(1999), req.UnitAmount)
	assert.Equal(t, "665f1f77bcf86cd799439011", req.OrderID)
}

func TestCheckoutService_CreateSession_BindsStorefrontPayload(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	ctx := context.Background()

	// The storefront sends the book id as the session's correlation key.
	body := `{"orderName":"The Go Programming Language","email":"reader@example.com","price":"19.99","bookId":"665f1f77bcf86cd799439011"}`
	var input usecase.CreateCheckoutInput
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	require.NotEmpty(t, input.BookID)

	var req *service.CheckoutRequest
	mockGateway.EXPECT().
		CreateCheckoutSession(ctx, mock.AnythingOfType("*service.CheckoutRequest")).
		Run(func(_ context.Context, r *service.CheckoutRequest) {
			req = r
		}).
		Return(&service.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil)

	_, err := svc.CreateSession(ctx, &input)
	require.NoError(t, err)

	require.NotNil(t, req)
	assert.Equal(t, "665f1f77bcf86cd799439011", req.OrderID)
}

func TestCheckoutService_CreateSession_InvalidPriceSkipsGateway(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	_, err := svc.CreateSession(context.Background(), &usecase.CreateCheckoutInput{
		OrderName: "The Go Programming Language",
		Email:     "reader@example.com",
		Price:     "free",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	mockGateway.AssertNotCalled(t, "CreateCheckoutSession")
}

func TestCheckoutService_CreateSession_GatewayError(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	ctx := context.Background()

	mockGateway.EXPECT().
		CreateCheckoutSession(ctx, mock.AnythingOfType("*service.CheckoutRequest")).
		Return(nil, errors.New("stripe unreachable"))

	_, err := svc.CreateSession(ctx, &usecase.CreateCheckoutInput{
		OrderName: "The Go Programming Language",
		Email:     "reader@example.com",
		Price:     "19.99",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentGateway)
}

func TestCheckoutService_CheckoutQR(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	mockQR.EXPECT().
		GenerateCheckoutQR("https://checkout.stripe.com/c/pay/cs_test_123").
		Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.CheckoutQR(context.Background(), "https://checkout.stripe.com/c/pay/cs_test_123")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCheckoutService_CheckoutQR_MissingURL(t *testing.T) {
	mockGateway := mockSvc.NewMockPaymentGateway(t)
	mockQR := mockSvc.NewMockQRCodeService(t)
	svc := NewCheckoutService(mockGateway, mockQR, testLogger())

	_, err := svc.CheckoutQR(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
