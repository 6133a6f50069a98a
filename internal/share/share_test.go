package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *Builder {
	return NewBuilder("https://free-energie.app", "https://api.qrserver.com/v1/create-qr-code/")
}

func TestReferralLink(t *testing.T) {
	b := newTestBuilder()
	assert.Equal(t, "https://free-energie.app/ref/spn-42", b.ReferralLink("spn-42"))
}

func TestQRCodeURL(t *testing.T) {
	b := newTestBuilder()

	raw := b.QRCodeURL("https://free-energie.app/ref/spn-42", 150)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "api.qrserver.com", u.Host)
	assert.Equal(t, "150x150", u.Query().Get("size"))
	assert.Equal(t, "1e3a8a", u.Query().Get("color"))
	assert.Equal(t, "https://free-energie.app/ref/spn-42", u.Query().Get("data"))
}

func TestSponsorKit(t *testing.T) {
	b := newTestBuilder()
	kit := b.SponsorKit("spn-42")

	assert.Contains(t, kit.Message, kit.ReferralLink)
	assert.True(t, strings.HasPrefix(kit.WhatsAppLink, "https://wa.me/?text="))
	assert.True(t, strings.HasPrefix(kit.SMSLink, "sms:?body="))
	// Deep links must not contain raw spaces or '+'.
	assert.NotContains(t, kit.WhatsAppLink, " ")
	assert.NotContains(t, kit.WhatsAppLink, "+")
	assert.Contains(t, kit.WhatsAppLink, "%20")
}

func TestOnboardingKit(t *testing.T) {
	b := newTestBuilder()
	kit := b.OnboardingKit("spn-42", "Claire")

	assert.Contains(t, kit.Message, "Claire")
	assert.Contains(t, kit.Message, "https://free-energie.app/ref/spn-42")
	assert.Contains(t, kit.QRCodeURL, "data=https%3A%2F%2Ffree-energie.app%2Fref%2Fspn-42")
}
