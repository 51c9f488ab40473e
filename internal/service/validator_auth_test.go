// internal/service/validator_auth_test.go
package service

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"wallet-ledger/internal/util"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidatorAuth(t *testing.T) (*validatorAuth, string) {
	t.Helper()
	secret, uri, err := GenerateOTPSecret("Wallet Ledger", "validator@example.com")
	require.NoError(t, err)
	assert.Contains(t, uri, "otpauth://totp/")

	auth := NewValidatorAuth(ValidatorCredentials{
		Email:            "validator@example.com",
		Password:         "s3cret",
		TelegramUsername: "ValidatorBot",
		OTPSecret:        secret,
	}).(*validatorAuth)
	return auth, secret
}

func TestValidatorLogin(t *testing.T) {
	auth, _ := newTestValidatorAuth(t)

	tests := []struct {
		name                      string
		email, password, telegram string
		wantErr                   error
	}{
		{"Valid", "validator@example.com", "s3cret", "ValidatorBot", nil},
		{"TelegramCaseInsensitive", "validator@example.com", "s3cret", "validatorbot", nil},
		{"WrongPassword", "validator@example.com", "nope", "ValidatorBot", util.ErrUnauthorized},
		{"WrongEmail", "someone@example.com", "s3cret", "ValidatorBot", util.ErrUnauthorized},
		{"WrongTelegram", "validator@example.com", "s3cret", "other", util.ErrUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := auth.Login(tc.email, tc.password, tc.telegram)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidatorVerifyOTP(t *testing.T) {
	auth, secret := newTestValidatorAuth(t)
	now := time.Date(2025, time.March, 5, 14, 7, 10, 0, time.UTC)
	auth.now = func() time.Time { return now }

	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyOTP("validator@example.com", code))

	previous, err := totp.GenerateCode(secret, now.Add(-30*time.Second))
	require.NoError(t, err)
	assert.NoError(t, auth.VerifyOTP("validator@example.com", previous))

	stale, err := totp.GenerateCode(secret, now.Add(-10*time.Minute))
	require.NoError(t, err)
	if stale != code {
		assert.ErrorIs(t, auth.VerifyOTP("validator@example.com", stale), util.ErrUnauthorized)
	}

	assert.ErrorIs(t, auth.VerifyOTP("someone@example.com", code), util.ErrUnauthorized)
	assert.ErrorIs(t, auth.VerifyOTP("validator@example.com", "12ab56"), util.ErrUnauthorized)
}

func TestGenerateOTPSecret(t *testing.T) {
	secret, uri, err := GenerateOTPSecret("Wallet Ledger", "validator@example.com")
	require.NoError(t, err)
	assert.Len(t, secret, 32) // 20 random bytes, base32 without padding
	assert.Contains(t, uri, "secret="+secret)
	assert.Contains(t, uri, "issuer=Wallet")

	other, _, err := GenerateOTPSecret("Wallet Ledger", "validator@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.True(t, totp.Validate(code, secret))
}

func TestWriteOTPQRCode(t *testing.T) {
	key, err := GenerateOTPKey("Wallet Ledger", "validator@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Wallet Ledger", key.Issuer())
	assert.Equal(t, "validator@example.com", key.AccountName())

	var buf bytes.Buffer
	require.NoError(t, WriteOTPQRCode(&buf, key, 200))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}
