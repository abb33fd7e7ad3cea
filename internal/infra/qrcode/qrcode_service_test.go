package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateCheckoutQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	data, err := svc.GenerateCheckoutQR("https://checkout.stripe.com/c/pay/cs_test_123")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestQRCodeService_DefaultsToMediumLevel(t *testing.T) {
	svc := NewQRCodeService(128, "bogus")

	data, err := svc.GenerateCheckoutQR("https://example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
