// Package payment builds UPI payment instruments. The builder is a pure
// function: identical inputs always yield identical URLs, and nothing here
// touches the network or the database.
package payment

import (
	"strconv"
	"strings"
)

// DefaultQRTemplate is the public QR-render endpoint used when no local
// renderer is configured. The percent-encoded UPI URL is appended to it.
const DefaultQRTemplate = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="

// Instrument is the payment artifact handed back for one order: the
// canonical UPI deep link and a URL that renders it as a QR image.
type Instrument struct {
	PayeeID  string `json:"payeeId"`
	Amount   int64  `json:"amount"` // Smallest currency unit.
	UPIURL   string `json:"upiUrl"`
	QRURL    string `json:"qrUrl"`
	OrderRef string `json:"orderRef,omitempty"`
}

// Builder composes UPI instruments against a fixed QR-render template.
type Builder struct {
	qrTemplate string
}

// NewBuilder creates a Builder. An empty template falls back to the public
// render endpoint.
func NewBuilder(qrTemplate string) *Builder {
	if qrTemplate == "" {
		qrTemplate = DefaultQRTemplate
	}

	return &Builder{qrTemplate: qrTemplate}
}

// Build composes the canonical UPI URL and its QR artifact for a payee,
// display name, amount, and optional reference. Parameter order is fixed:
// pa, pn, am, cu, then tn when a reference is given. cu is always INR.
func (b *Builder) Build(payeeID, payeeName string, amount int64, reference string) Instrument {
	var sb strings.Builder
	sb.WriteString("upi://pay?pa=")
	sb.WriteString(escape(payeeID))
	sb.WriteString("&pn=")
	sb.WriteString(escape(payeeName))
	sb.WriteString("&am=")
	sb.WriteString(formatAmount(amount))
	sb.WriteString("&cu=INR")
	if reference != "" {
		sb.WriteString("&tn=")
		sb.WriteString(escape(reference))
	}

	upiURL := sb.String()

	return Instrument{
		PayeeID:  payeeID,
		Amount:   amount,
		UPIURL:   upiURL,
		QRURL:    b.qrTemplate + escape(upiURL),
		OrderRef: reference,
	}
}

// escape percent-encodes everything outside the unreserved set
// (ALPHA / DIGIT / "-" / "." / "_" / "~"). Space becomes %20, never "+".
func escape(s string) string {
	const upperhex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0xf])
	}

	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	default:
		return false
	}
}

func formatAmount(amount int64) string {
	if amount < 0 {
		amount = 0
	}

	return strconv.FormatInt(amount, 10)
}
