// Package share builds the sponsor-facing share material: the referral link,
// the QR code image URL and the WhatsApp / SMS deep links with a pre-filled
// message.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// Builder derives share material from the configured base URLs.
type Builder struct {
	referralBaseURL string
	qrServiceURL    string
}

func NewBuilder(referralBaseURL, qrServiceURL string) *Builder {
	return &Builder{
		referralBaseURL: strings.TrimSuffix(referralBaseURL, "/"),
		qrServiceURL:    strings.TrimSuffix(qrServiceURL, "/"),
	}
}

// Kit is everything a sponsor needs to share their referral code.
type Kit struct {
	ReferralLink string `json:"referral_link"`
	QRCodeURL    string `json:"qr_code_url"`
	WhatsAppLink string `json:"whatsapp_link"`
	SMSLink      string `json:"sms_link"`
	Message      string `json:"message"`
}

// SponsorKit builds the kit handed to a sponsor for self-sharing.
func (b *Builder) SponsorKit(sponsorID string) Kit {
	link := b.ReferralLink(sponsorID)
	msg := fmt.Sprintf("Salut ! Rejoins mon équipe Free Energie. En plus des économies, tu peux gagner de l'argent en parrainant à ton tour ! Lien : %s", link)
	return b.kit(link, msg)
}

// OnboardingKit builds the kit a supervisor sends to a named sponsor with
// their personal QR code.
func (b *Builder) OnboardingKit(sponsorID, sponsorName string) Kit {
	link := b.ReferralLink(sponsorID)
	msg := fmt.Sprintf("Bonjour %s, voici votre QR Code personnel pour parrainer vos proches sur Free Energie : %s", sponsorName, link)
	return b.kit(link, msg)
}

func (b *Builder) kit(link, msg string) Kit {
	return Kit{
		ReferralLink: link,
		QRCodeURL:    b.QRCodeURL(link, 150),
		WhatsAppLink: "https://wa.me/?text=" + escape(msg),
		SMSLink:      "sms:?body=" + escape(msg),
		Message:      msg,
	}
}

// ReferralLink is the public landing URL carrying the sponsor's code.
func (b *Builder) ReferralLink(sponsorID string) string {
	return b.referralBaseURL + "/ref/" + url.PathEscape(sponsorID)
}

// QRCodeURL points at the external QR renderer. The color is the brand's
// dark blue.
func (b *Builder) QRCodeURL(data string, size int) string {
	if size <= 0 {
		size = 150
	}
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	q.Set("color", "1e3a8a")
	return b.qrServiceURL + "/?" + q.Encode()
}

// escape mirrors JS encodeURIComponent closely enough for deep links: spaces
// become %20, not '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
