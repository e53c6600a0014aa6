package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)
	secret := "whsec_test"

	assert.True(t, VerifyWebhookSignature(body, sign(body, secret), secret))

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(body, sign(body, "whsec_other"), secret))
	})

	t.Run("single byte mutation", func(t *testing.T) {
		sig := sign(body, secret)
		mutated := append([]byte{}, body...)
		mutated[len(mutated)-2] ^= 0x01
		assert.False(t, VerifyWebhookSignature(mutated, sig, secret))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(body, "", secret))
	})

	t.Run("empty secret", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(body, sign(body, secret), ""))
	})

	t.Run("malformed signature", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(body, "not-hex-at-all", secret))
	})
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "key_secret_test"
	sig := sign([]byte("order_1|pay_1"), secret)

	assert.True(t, VerifyPaymentSignature("order_1", "pay_1", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_2", "pay_1", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_2", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", sig, "wrong"))
	assert.False(t, VerifyPaymentSignature("order_1", "pay_1", "", secret))
}
