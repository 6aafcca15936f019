package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Build_CanonicalURL(t *testing.T) {
	b := NewBuilder("")

	instrument := b.Build("shop@bank", "Ada's Books", 1500, "ORD-42")

	assert.Equal(t, "upi://pay?pa=shop%40bank&pn=Ada%27s%20Books&am=1500&cu=INR&tn=ORD-42", instrument.UPIURL)
	assert.Equal(t, "shop@bank", instrument.PayeeID)
	assert.Equal(t, int64(1500), instrument.Amount)
	assert.Equal(t, "ORD-42", instrument.OrderRef)
}

func TestBuilder_Build_NoReferenceOmitsNote(t *testing.T) {
	b := NewBuilder("")

	instrument := b.Build("shop@bank", "Chai Point", 250, "")

	assert.Equal(t, "upi://pay?pa=shop%40bank&pn=Chai%20Point&am=250&cu=INR", instrument.UPIURL)
	assert.Empty(t, instrument.OrderRef)
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	b := NewBuilder("")

	first := b.Build("shop@bank", "Chai Point", 250, "ORD-1")
	second := b.Build("shop@bank", "Chai Point", 250, "ORD-1")

	assert.Equal(t, first, second)
}

func TestBuilder_Build_QRURLWrapsEncodedUPIURL(t *testing.T) {
	b := NewBuilder("")

	instrument := b.Build("shop@bank", "Chai Point", 250, "")

	assert.Equal(t, DefaultQRTemplate+escape(instrument.UPIURL), instrument.QRURL)
	// The UPI URL is encoded a second time when embedded as a query value.
	assert.Contains(t, instrument.QRURL, "upi%3A%2F%2Fpay%3F")
}

func TestBuilder_Build_CustomTemplate(t *testing.T) {
	b := NewBuilder("https://pay.example.edu/qr?data=")

	instrument := b.Build("shop@bank", "Chai Point", 250, "")

	assert.Contains(t, instrument.QRURL, "https://pay.example.edu/qr?data=")
}

func TestBuilder_Build_NegativeAmountClampsToZero(t *testing.T) {
	b := NewBuilder("")

	instrument := b.Build("shop@bank", "Chai Point", -10, "")

	assert.Contains(t, instrument.UPIURL, "&am=0&")
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unreserved passthrough", "Abc-123._~", "Abc-123._~"},
		{"space is percent twenty", "Ada's Books", "Ada%27s%20Books"},
		{"at sign", "shop@bank", "shop%40bank"},
		{"plus is encoded", "a+b", "a%2Bb"},
		{"uppercase hex", "/", "%2F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escape(tt.in))
		})
	}
}
