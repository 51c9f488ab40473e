// internal/service/validator_auth.go
package service

import (
	"crypto/subtle"
	"fmt"
	"image/png"
	"io"
	"strings"
	"time"

	"wallet-ledger/internal/util"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ValidatorCredentials are the operator's configured login values.
type ValidatorCredentials struct {
	Email            string
	Password         string
	TelegramUsername string
	OTPSecret        string
}

// ValidatorAuth is the two-step operator gate: credentials, then a TOTP code.
// It issues no session.
type ValidatorAuth interface {
	Login(email, password, telegramUsername string) error
	VerifyOTP(email, code string) error
}

type validatorAuth struct {
	creds ValidatorCredentials
	now   func() time.Time
}

// NewValidatorAuth creates a ValidatorAuth checking against creds.
func NewValidatorAuth(creds ValidatorCredentials) ValidatorAuth {
	return &validatorAuth{creds: creds, now: time.Now}
}

func (a *validatorAuth) Login(email, password, telegramUsername string) error {
	emailOK := secureEqual(email, a.creds.Email)
	passwordOK := secureEqual(password, a.creds.Password)
	telegramOK := strings.EqualFold(strings.TrimSpace(telegramUsername), a.creds.TelegramUsername)
	if !emailOK || !passwordOK || !telegramOK {
		return util.ErrUnauthorized
	}
	return nil
}

// VerifyOTP accepts codes from the current 30 second step and one step either side.
func (a *validatorAuth) VerifyOTP(email, code string) error {
	if !secureEqual(email, a.creds.Email) {
		return util.ErrUnauthorized
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), a.creds.OTPSecret, a.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !ok {
		return util.ErrUnauthorized
	}
	return nil
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateOTPKey creates a new TOTP key for the operator account.
func GenerateOTPKey(issuer, accountName string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      30,
		SecretSize:  20,
		Algorithm:   otp.AlgorithmSHA1,
	})
}

// GenerateOTPSecret creates a new base32 operator secret and its otpauth:// URI.
func GenerateOTPSecret(issuer, accountName string) (secret, uri string, err error) {
	key, err := GenerateOTPKey(issuer, accountName)
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// WriteOTPQRCode encodes key's provisioning URI as a size x size PNG QR code.
func WriteOTPQRCode(w io.Writer, key *otp.Key, size int) error {
	img, err := key.Image(size, size)
	if err != nil {
		return fmt.Errorf("render qr code: %w", err)
	}
	return png.Encode(w, img)
}
