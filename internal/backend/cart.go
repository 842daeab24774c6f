package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type CartResult struct {
	Items   []CartLine
	Message string
}

type addToCartRequest struct {
	ItemName   string      `json:"item_name"`
	Price      json.Number `json:"price"`
	MenuItemID int64       `json:"menu_item_id,omitempty"`
}

type updateQuantityRequest struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type removeFromCartRequest struct {
	ItemName string `json:"item_name"`
}

type cartMutationResponse struct {
	CartItems []CartLine `json:"cart_items"`
}

func (c *Client) Cart(ctx context.Context) (Cart, error) {
	var cart Cart
	if _, err := c.do(ctx, "cart", http.MethodGet, "/cart", nil, &cart); err != nil {
		return Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []CartLine{}
	}
	return cart, nil
}

func (c *Client) AddToCart(ctx context.Context, name string, price decimal.Decimal, menuItemID int64) (CartResult, error) {
	body := addToCartRequest{
		ItemName:   strings.TrimSpace(name),
		Price:      json.Number(price.String()),
		MenuItemID: menuItemID,
	}
	return c.mutateCart(ctx, "add_to_cart", "/add_to_cart", body)
}

func (c *Client) UpdateQuantity(ctx context.Context, name string, quantity int) (CartResult, error) {
	return c.mutateCart(ctx, "update_quantity", "/update_quantity", updateQuantityRequest{ItemName: name, Quantity: quantity})
}

func (c *Client) RemoveFromCart(ctx context.Context, name string) (CartResult, error) {
	return c.mutateCart(ctx, "remove_from_cart", "/remove_from_cart", removeFromCartRequest{ItemName: name})
}

func (c *Client) mutateCart(ctx context.Context, op, path string, body any) (CartResult, error) {
	var resp cartMutationResponse
	message, err := c.do(ctx, op, http.MethodPost, path, body, &resp)
	if err != nil {
		return CartResult{}, err
	}
	items := resp.CartItems
	if items == nil {
		items = []CartLine{}
	}
	return CartResult{Items: items, Message: message}, nil
}
