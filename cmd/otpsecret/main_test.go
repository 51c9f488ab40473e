// cmd/otpsecret/main_test.go
package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"wallet-ledger/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteQR(t *testing.T) {
	key, err := service.GenerateOTPKey("WalletLedger", "validator@example.com")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "validator_qr.png")
	require.NoError(t, writeQR(path, key, 120))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestWriteQR_BadPath(t *testing.T) {
	key, err := service.GenerateOTPKey("WalletLedger", "validator@example.com")
	require.NoError(t, err)

	err = writeQR(filepath.Join(t.TempDir(), "missing", "qr.png"), key, 120)
	assert.Error(t, err)
}
