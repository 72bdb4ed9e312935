package service

// CollectionCode is the payload encoded into a package collection QR:
// the driver scans it (or types the PIN) to confirm physical pickup.
type CollectionCode struct {
	OrderID string `json:"order_id"`
	PIN     string `json:"pin"`
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateCollectionQR generates a QR code image for package collection.
	GenerateCollectionQR(orderID, pin string) ([]byte, error)

	// ParseCollectionQR parses scanned QR data back into a collection code.
	ParseCollectionQR(qrData string) (*CollectionCode, error)
}
