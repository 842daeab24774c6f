package backend

import (
	"context"
	"errors"
	"net/http"
	"sort"
)

type OrderResult struct {
	Order   Order
	Message string
}

// createOrderRequest carries the name under both keys; deployed backends read
// either one.
type createOrderRequest struct {
	Name      string `json:"name"`
	OrderName string `json:"order_name"`
}

type joinOrderRequest struct {
	PIN string `json:"pin"`
}

type orderResponse struct {
	Order *Order `json:"order"`
	PIN   string `json:"pin"`
}

func (c *Client) CreateOrder(ctx context.Context, name string) (OrderResult, error) {
	return c.enterOrder(ctx, "create_order", "/create_order", createOrderRequest{Name: name, OrderName: name})
}

func (c *Client) JoinOrder(ctx context.Context, pin string) (OrderResult, error) {
	return c.enterOrder(ctx, "join_order", "/join_order", joinOrderRequest{PIN: pin})
}

func (c *Client) enterOrder(ctx context.Context, op, path string, body any) (OrderResult, error) {
	var resp orderResponse
	message, err := c.do(ctx, op, http.MethodPost, path, body, &resp)
	if err != nil {
		return OrderResult{}, err
	}
	if resp.Order == nil {
		return OrderResult{}, &Error{Kind: KindProtocol, Op: op, Status: http.StatusOK, Err: errors.New("response has no order")}
	}
	order := *resp.Order
	if order.PIN == "" {
		order.PIN = resp.PIN
	}
	return OrderResult{Order: order, Message: message}, nil
}

func (c *Client) LeaveOrder(ctx context.Context) (string, error) {
	return c.do(ctx, "leave_order", http.MethodPost, "/leave_order", nil, nil)
}

type menuResponse struct {
	MenuItems  []MenuItem            `json:"menu_items"`
	Categories map[string][]MenuItem `json:"categories"`
}

// MenuItems returns the menu in the backend's order. The flat menu_items list
// is the canonical shape; a categories map is flattened with categories sorted
// by name.
func (c *Client) MenuItems(ctx context.Context) ([]MenuItem, error) {
	var resp menuResponse
	if _, err := c.do(ctx, "menu_items", http.MethodGet, "/menu_items", nil, &resp); err != nil {
		return nil, err
	}
	if resp.MenuItems != nil {
		return resp.MenuItems, nil
	}

	names := make([]string, 0, len(resp.Categories))
	for name := range resp.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]MenuItem, 0)
	for _, name := range names {
		for _, item := range resp.Categories[name] {
			if item.Category == "" {
				item.Category = name
			}
			items = append(items, item)
		}
	}
	return items, nil
}
