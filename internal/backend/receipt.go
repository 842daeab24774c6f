package backend

import (
	"context"
	"net/http"
)

type receiptResponse struct {
	receiptPayload
	Receipt *receiptPayload `json:"receipt"`
}

// GenerateReceipt fetches the receipt for the session's current order. Both the
// nested {receipt: {...}} and the flattened response shapes are accepted; a
// missing timestamp is replaced with the fetch time.
func (c *Client) GenerateReceipt(ctx context.Context) (Receipt, error) {
	var resp receiptResponse
	if _, err := c.do(ctx, "generate_receipt", http.MethodGet, "/generate_receipt", nil, &resp); err != nil {
		return Receipt{}, err
	}
	payload := resp.receiptPayload
	if resp.Receipt != nil {
		payload = *resp.Receipt
	}
	return payload.normalize(c.now()), nil
}
