package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
		wantLevel            qrcode.RecoveryLevel
		wantSize             int
	}{
		{"Low error correction", 256, "L", qrcode.Low, 256},
		{"Medium error correction", 256, "M", qrcode.Medium, 256},
		{"High error correction", 256, "Q", qrcode.High, 256},
		{"Highest error correction", 256, "H", qrcode.Highest, 256},
		{"Default error correction", 256, "invalid", qrcode.Medium, 256},
		{"Default size", 0, "M", qrcode.Medium, defaultSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel).(*qrcodeService)
			assert.Equal(t, tt.wantLevel, svc.errorCorrectionLevel)
			assert.Equal(t, tt.wantSize, svc.size)
		})
	}
}

func TestQRCodeService_GenerateLinkQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	pngBytes, err := svc.GenerateLinkQR("https://yearbook.example.com/yearbook/preview/school%3A2024")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestQRCodeService_GenerateLinkQR_RejectsRelativeLinks(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	for _, link := range []string{"", "/yearbook/preview/x", "not a url"} {
		_, err := svc.GenerateLinkQR(link)
		assert.Error(t, err, link)
	}
}
