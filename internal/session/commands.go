package session

import (
	"group-order-client/internal/backend"

	"github.com/shopspring/decimal"
)

// Command is one user action. Each maps to exactly one controller operation.
type Command interface {
	CommandName() string
}

type Signup struct {
	Name     string
	Email    string
	Password string
}

type Login struct {
	Email    string
	Password string
}

type Logout struct{}

type CheckAuth struct{}

type CreateOrder struct {
	Name string
}

type JoinOrder struct {
	PIN string
}

type LoadMenu struct{}

type RefreshCart struct{}

type AddToCart struct {
	ItemName   string
	Price      decimal.Decimal
	MenuItemID int64
}

type UpdateQuantity struct {
	ItemName string
	Quantity int
}

type RemoveFromCart struct {
	ItemName string
}

type LeaveOrder struct {
	Confirmed bool
}

type GenerateReceipt struct{}

func (Signup) CommandName() string          { return "signup" }
func (Login) CommandName() string           { return "login" }
func (Logout) CommandName() string          { return "logout" }
func (CheckAuth) CommandName() string       { return "check_auth" }
func (CreateOrder) CommandName() string     { return "create_order" }
func (JoinOrder) CommandName() string       { return "join_order" }
func (LoadMenu) CommandName() string        { return "menu_items" }
func (RefreshCart) CommandName() string     { return "cart" }
func (AddToCart) CommandName() string       { return "add_to_cart" }
func (UpdateQuantity) CommandName() string  { return "update_quantity" }
func (RemoveFromCart) CommandName() string  { return "remove_from_cart" }
func (LeaveOrder) CommandName() string      { return "leave_order" }
func (GenerateReceipt) CommandName() string { return "generate_receipt" }

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	// OutcomeSkipped: a local no-op, nothing was sent.
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailure Outcome = "failure"
)

// Result is what a command produced. Exactly one of Err (failure) or the
// success payload fields is meaningful.
type Result struct {
	Command string
	Outcome Outcome
	Message string
	PIN     string
	Receipt *backend.Receipt
	Err     *backend.Error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

type failureMessages struct {
	rejected  string
	transport string
}

// Fallbacks used when the backend gave no message.
var commandFailureMessages = map[string]failureMessages{
	"signup":           {rejected: "Signup failed", transport: "An error occurred during signup"},
	"login":            {rejected: "Login failed", transport: "An error occurred during login"},
	"logout":           {rejected: "Failed to logout", transport: "Failed to logout. Please try again."},
	"check_auth":       {rejected: "Not signed in", transport: "Could not reach the order service"},
	"create_order":     {rejected: "Failed to create order", transport: "An error occurred while creating the order"},
	"join_order":       {rejected: "Failed to join order", transport: "An error occurred while joining the order"},
	"menu_items":       {rejected: "Failed to load menu items", transport: "Failed to load menu items. Please try again."},
	"cart":             {rejected: "Failed to load cart", transport: "Failed to load cart. Please try again."},
	"add_to_cart":      {rejected: "Failed to add item to cart", transport: "Failed to add item to cart. Please try again."},
	"update_quantity":  {rejected: "Failed to update quantity", transport: "Failed to update quantity. Please try again."},
	"remove_from_cart": {rejected: "Failed to remove item from cart", transport: "Failed to remove item from cart. Please try again."},
	"leave_order":      {rejected: "Failed to leave order", transport: "Failed to leave order. Please try again."},
	"generate_receipt": {rejected: "Failed to generate receipt", transport: "Failed to generate receipt. Please try again."},
}

func userMessage(op string, be *backend.Error) string {
	if be.Kind == backend.KindValidation && be.Message != "" {
		return be.Message
	}
	if msg := be.ServerMessage(); msg != "" {
		return msg
	}
	fallback := commandFailureMessages[op]
	if be.Kind == backend.KindTransport {
		return fallback.transport
	}
	if fallback.rejected == "" {
		return "Something went wrong. Please try again."
	}
	return fallback.rejected
}
