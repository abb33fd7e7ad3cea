package service

// QRCodeService renders a checkout redirect URL as a scannable code, for
// storefronts that show the hosted checkout on a second device.
type QRCodeService interface {
	// GenerateCheckoutQR returns a PNG image encoding the given URL.
	GenerateCheckoutQR(url string) ([]byte, error)
}
