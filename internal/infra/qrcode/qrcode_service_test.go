package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel/config"
)

func serviceWith(size int, level string) *qrcodeService {
	cfg := &config.Config{}
	cfg.QRCode = &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level}

	return NewQRCodeService(cfg).(*qrcodeService)
}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, serviceWith(tt.size, tt.errorCorrectionLevel))
		})
	}
}

func TestQRCodeService_GenerateCollectionQR(t *testing.T) {
	svc := serviceWith(256, "M")

	qrBytes, err := svc.GenerateCollectionQR("order-123", "4821")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParseCollectionQR(t *testing.T) {
	svc := serviceWith(256, "M")

	raw, err := json.Marshal(qrPayload{OrderID: "order-123", PIN: "4821", Type: "collection"})
	require.NoError(t, err)

	code, err := svc.ParseCollectionQR(string(raw))
	require.NoError(t, err)
	assert.Equal(t, "order-123", code.OrderID)
	assert.Equal(t, "4821", code.PIN)
}

func TestQRCodeService_ParseCollectionQR_Invalid(t *testing.T) {
	svc := serviceWith(256, "M")

	tests := []struct {
		name string
		data string
	}{
		{"not json", "not-a-qr-payload"},
		{"wrong type", `{"order_id":"o1","pin":"1234","type":"subscription"}`},
		{"missing pin", `{"order_id":"o1","type":"collection"}`},
		{"missing order", `{"pin":"1234","type":"collection"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseCollectionQR(tt.data)
			assert.Error(t, err)
		})
	}
}
