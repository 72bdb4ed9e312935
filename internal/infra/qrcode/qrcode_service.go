// Package qrcode implements generation and parsing of package
// collection codes.
package qrcode

import (
	"encoding/json"
	"fmt"

	"parcel/config"
	"parcel/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// qrPayload is the wire form of a collection code. The type tag guards
// against scanning unrelated QR codes with the driver app.
type qrPayload struct {
	OrderID string `json:"order_id"`
	PIN     string `json:"pin"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	levelName := "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			levelName = cfg.QRCode.ErrorCorrectionLevel
		}
	}

	// Set error correction level
	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateCollectionQR generates a QR code image for package collection.
func (s *qrcodeService) GenerateCollectionQR(orderID, pin string) ([]byte, error) {
	data := qrPayload{
		OrderID: orderID,
		PIN:     pin,
		Type:    "collection",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseCollectionQR parses scanned QR data back into a collection code.
func (s *qrcodeService) ParseCollectionQR(qrData string) (*service.CollectionCode, error) {
	var data qrPayload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != "collection" {
		return nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.OrderID == "" || data.PIN == "" {
		return nil, fmt.Errorf("incomplete collection code")
	}

	return &service.CollectionCode{
		OrderID: data.OrderID,
		PIN:     data.PIN,
	}, nil
}
