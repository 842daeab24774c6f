package receipt

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"group-order-client/internal/backend"

	"github.com/shopspring/decimal"
)

type fakePutter struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakePutter) PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key = key
	f.body = body
	f.contentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func sampleReceipt() backend.Receipt {
	return backend.Receipt{
		OrderName: "Lunch",
		OrderPIN:  "4821",
		Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Participants: []backend.ReceiptParticipant{
			{
				Name: "Ana",
				Items: []backend.ReceiptLine{
					{Name: "Pad Thai", Quantity: 2, Price: decimal.RequireFromString("9.50"), Total: decimal.RequireFromString("19.00")},
				},
				Subtotal: decimal.RequireFromString("19.00"),
			},
			{
				Name: "Bo",
				Items: []backend.ReceiptLine{
					{Name: "Spring Rolls", Quantity: 1, Price: decimal.RequireFromString("4.25"), Total: decimal.RequireFromString("4.25")},
				},
				Subtotal: decimal.RequireFromString("4.25"),
			},
		},
		GrandTotal: decimal.RequireFromString("23.25"),
	}
}

func TestRenderPDF(t *testing.T) {
	cases := []struct {
		name    string
		receipt backend.Receipt
	}{
		{name: "with participants", receipt: sampleReceipt()},
		{name: "empty order", receipt: backend.Receipt{OrderName: "Empty", OrderPIN: "1111"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RenderPDF(tc.receipt)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Fatalf("expected pdf header")
			}
		})
	}
}

func TestArchiverKey(t *testing.T) {
	r := sampleReceipt()
	cases := []struct {
		name   string
		prefix string
		pin    string
		want   string
	}{
		{name: "prefixed", prefix: "/receipts/", pin: "4821", want: "receipts/4821/20240501T123000Z.pdf"},
		{name: "no prefix", prefix: "", pin: "4821", want: "4821/20240501T123000Z.pdf"},
		{name: "missing pin", prefix: "receipts", pin: " ", want: "receipts/unknown/20240501T123000Z.pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r.OrderPIN = tc.pin
			got := NewArchiver(&fakePutter{}, tc.prefix, nil).Key(r)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestArchiveUploadsPDF(t *testing.T) {
	putter := &fakePutter{}
	url, err := NewArchiver(putter, "receipts", nil).Archive(context.Background(), sampleReceipt())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if url != "https://cdn.example.com/receipts/4821/20240501T123000Z.pdf" {
		t.Fatalf("unexpected url %s", url)
	}
	if putter.contentType != "application/pdf" || !bytes.HasPrefix(putter.body, []byte("%PDF")) {
		t.Fatalf("expected pdf upload, got %s", putter.contentType)
	}
}

func TestArchivePropagatesUploadError(t *testing.T) {
	putter := &fakePutter{err: errors.New("denied")}
	if _, err := NewArchiver(putter, "receipts", nil).Archive(context.Background(), sampleReceipt()); err == nil {
		t.Fatalf("expected error")
	}
}
