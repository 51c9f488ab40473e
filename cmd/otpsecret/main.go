// cmd/otpsecret/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"

	"github.com/pquerna/otp"
)

// otpsecret prints a fresh VALIDATOR_GOOGLE_SECRET and the otpauth:// URI to
// enrol it in an authenticator app, and optionally writes the URI as a QR code.
func main() {
	issuer := flag.String("issuer", "WalletLedger", "issuer shown in the authenticator app")
	account := flag.String("account", os.Getenv("VALIDATOR_EMAIL"), "account name, usually the validator email")
	qrPath := flag.String("qr", "validator_qr.png", "PNG file for the provisioning QR code, empty to skip")
	qrSize := flag.Int("qr-size", 200, "QR code width and height in pixels")
	flag.Parse()

	logger := util.GetLogger()

	if *account == "" {
		*account = "validator"
	}

	key, err := service.GenerateOTPKey(*issuer, *account)
	if err != nil {
		logger.Error("Failed to generate OTP secret", "error", err)
		os.Exit(1)
	}

	fmt.Printf("VALIDATOR_GOOGLE_SECRET=%s\n", key.Secret())
	fmt.Printf("Provisioning URI: %s\n", key.URL())

	if *qrPath == "" {
		return
	}
	if err := writeQR(*qrPath, key, *qrSize); err != nil {
		logger.Error("Failed to write QR code", "path", *qrPath, "error", err)
		os.Exit(1)
	}
	fmt.Printf("QR code written to %s\n", *qrPath)
}

func writeQR(path string, key *otp.Key, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := service.WriteOTPQRCode(f, key, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
