package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"group-order-client/internal/backend"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// API is the slice of the order backend the controller drives.
type API interface {
	Signup(ctx context.Context, name, email, password string) (backend.AuthResult, error)
	Login(ctx context.Context, email, password string) (backend.AuthResult, error)
	Logout(ctx context.Context) (string, error)
	CheckAuth(ctx context.Context) (backend.AuthStatus, error)
	CreateOrder(ctx context.Context, name string) (backend.OrderResult, error)
	JoinOrder(ctx context.Context, pin string) (backend.OrderResult, error)
	LeaveOrder(ctx context.Context) (string, error)
	MenuItems(ctx context.Context) ([]backend.MenuItem, error)
	Cart(ctx context.Context) (backend.Cart, error)
	AddToCart(ctx context.Context, name string, price decimal.Decimal, menuItemID int64) (backend.CartResult, error)
	UpdateQuantity(ctx context.Context, name string, quantity int) (backend.CartResult, error)
	RemoveFromCart(ctx context.Context, name string) (backend.CartResult, error)
	GenerateReceipt(ctx context.Context) (backend.Receipt, error)
}

// Controller is the Session Client for one user. Local state is a cache of the
// backend's answers: every successful response overwrites it and failures
// leave it untouched. Commands are serialized, so at most one backend call is
// in flight per controller.
type Controller struct {
	mu     sync.Mutex
	api    API
	logger *zap.Logger
	state  View

	subsMu sync.Mutex
	subs   map[chan View]struct{}
}

func NewController(api API, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    api,
		logger: logger,
		state:  emptyState(false),
		subs:   make(map[chan View]struct{}),
	}
}

func emptyState(probed bool) View {
	return View{
		Screen:    ScreenAuth,
		Cart:      []backend.CartLine{},
		CartTotal: decimal.Zero,
		Probed:    probed,
	}
}

// Dispatch runs one command. Subscribers hear about it only when the rendered
// state changed; notices and form drafts belong to the page that issued the
// command.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runLocked(ctx, cmd)
}

func (c *Controller) runLocked(ctx context.Context, cmd Command) Result {
	before := c.snapshotLocked()
	res := c.dispatchLocked(ctx, cmd)
	after := c.snapshotLocked()
	if res.Outcome != OutcomeSkipped && !sameState(before, after) {
		// still under c.mu, so subscribers see views in command order
		c.publish(after)
	}
	return res
}

func (c *Controller) dispatchLocked(ctx context.Context, cmd Command) Result {
	switch cmd := cmd.(type) {
	case Signup:
		return c.signup(ctx, cmd)
	case Login:
		return c.login(ctx, cmd)
	case Logout:
		return c.logout(ctx)
	case CheckAuth:
		return c.checkAuth(ctx)
	case CreateOrder:
		return c.createOrder(ctx, cmd)
	case JoinOrder:
		return c.joinOrder(ctx, cmd)
	case LoadMenu:
		return c.loadMenu(ctx)
	case RefreshCart:
		return c.refreshCart(ctx)
	case AddToCart:
		return c.addToCart(ctx, cmd)
	case UpdateQuantity:
		return c.updateQuantity(ctx, cmd)
	case RemoveFromCart:
		return c.removeFromCart(ctx, cmd)
	case LeaveOrder:
		return c.leaveOrder(ctx, cmd)
	case GenerateReceipt:
		return c.generateReceipt(ctx)
	default:
		be := backend.ValidationError("dispatch", fmt.Sprintf("unknown command %T", cmd))
		return c.fail("dispatch", be)
	}
}

// Start runs the initial session probe once per controller.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Probed {
		return
	}
	c.runLocked(ctx, CheckAuth{})
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// TakeView returns the current view and consumes its notice.
func (c *Controller) TakeView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.snapshotLocked()
	c.state.Notice = nil
	return view
}

// Flash sets a notice produced outside the command set, such as the outcome of
// a receipt upload. Like command notices it is not published.
func (c *Controller) Flash(kind NoticeKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notice = &Notice{Kind: kind, Text: text}
}

func (c *Controller) snapshotLocked() View {
	view := c.state
	if c.state.User != nil {
		u := *c.state.User
		view.User = &u
	}
	if c.state.Order != nil {
		o := *c.state.Order
		view.Order = &o
	}
	if c.state.Notice != nil {
		n := *c.state.Notice
		view.Notice = &n
	}
	view.Menu = copyMenu(c.state.Menu)
	view.Cart = append([]backend.CartLine{}, c.state.Cart...)
	return view
}

func (c *Controller) fail(op string, err error) Result {
	be := backend.AsError(op, err)
	message := userMessage(op, be)
	c.logger.Warn(
		"command failed",
		zap.String("command", op),
		zap.String("kind", string(be.Kind)),
		zap.Int("status", be.Status),
		zap.String("screen", string(c.state.Screen)),
		zap.Error(be),
	)
	c.state.Notice = &Notice{Kind: NoticeError, Text: message}
	return Result{Command: op, Outcome: OutcomeFailure, Message: message, Err: be}
}

func (c *Controller) succeed(op, message string) Result {
	if message != "" {
		c.state.Notice = &Notice{Kind: NoticeInfo, Text: message}
	}
	return Result{Command: op, Outcome: OutcomeSuccess, Message: message}
}

func skipped(op string) Result {
	return Result{Command: op, Outcome: OutcomeSkipped}
}

func (c *Controller) signup(ctx context.Context, cmd Signup) Result {
	op := cmd.CommandName()
	c.state.Forms.SignupName = strings.TrimSpace(cmd.Name)
	c.state.Forms.SignupEmail = strings.TrimSpace(cmd.Email)

	res, err := c.api.Signup(ctx, cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		return c.fail(op, err)
	}
	c.enterOptions(res.User)
	return c.succeed(op, "")
}

func (c *Controller) login(ctx context.Context, cmd Login) Result {
	op := cmd.CommandName()
	c.state.Forms.LoginEmail = strings.TrimSpace(cmd.Email)

	res, err := c.api.Login(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return c.fail(op, err)
	}
	c.enterOptions(res.User)
	return c.succeed(op, "")
}

func (c *Controller) enterOptions(user backend.User) {
	c.state.User = &user
	c.state.Authenticated = true
	c.state.Screen = ScreenOrderOptions
	c.state.Forms = Forms{}
}

func (c *Controller) logout(ctx context.Context) Result {
	op := Logout{}.CommandName()
	message, err := c.api.Logout(ctx)
	if err != nil {
		return c.fail(op, err)
	}
	c.state = emptyState(true)
	return c.succeed(op, message)
}

func (c *Controller) checkAuth(ctx context.Context) Result {
	op := CheckAuth{}.CommandName()
	status, err := c.api.CheckAuth(ctx)
	if err != nil || !status.Authenticated || status.User == nil {
		c.state = emptyState(true)
		if err != nil {
			// The probe only decides the first screen; it raises no notice.
			be := backend.AsError(op, err)
			c.logger.Warn("session probe failed", zap.String("kind", string(be.Kind)), zap.Error(be))
			return Result{Command: op, Outcome: OutcomeFailure, Message: userMessage(op, be), Err: be}
		}
		return Result{Command: op, Outcome: OutcomeSuccess}
	}

	user := *status.User
	c.state.User = &user
	c.state.Authenticated = true
	c.state.Probed = true

	if status.ActiveOrder == nil {
		c.state.Screen = ScreenOrderOptions
		c.clearOrder()
		return Result{Command: op, Outcome: OutcomeSuccess}
	}

	c.enterOrder(*status.ActiveOrder)
	c.loadMenuQuietly(ctx)
	c.refreshCartQuietly(ctx)
	return Result{Command: op, Outcome: OutcomeSuccess}
}

func (c *Controller) enterOrder(order backend.Order) {
	c.state.Order = &order
	c.state.Screen = ScreenActiveOrder
	c.state.Menu = nil
	c.state.Cart = []backend.CartLine{}
	c.state.CartTotal = decimal.Zero
	c.state.MenuError = ""
}

func (c *Controller) clearOrder() {
	c.state.Order = nil
	c.state.Menu = nil
	c.state.Cart = []backend.CartLine{}
	c.state.CartTotal = decimal.Zero
	c.state.MenuError = ""
}

func (c *Controller) createOrder(ctx context.Context, cmd CreateOrder) Result {
	op := cmd.CommandName()
	c.state.Forms.OrderName = strings.TrimSpace(cmd.Name)

	res, err := c.api.CreateOrder(ctx, strings.TrimSpace(cmd.Name))
	if err != nil {
		return c.fail(op, err)
	}
	c.enterOrder(res.Order)
	c.state.Forms.OrderName = ""
	c.loadMenuQuietly(ctx)

	result := c.succeed(op, fmt.Sprintf("Order created! Share this PIN with others: %s", res.Order.PIN))
	result.PIN = res.Order.PIN
	return result
}

func (c *Controller) joinOrder(ctx context.Context, cmd JoinOrder) Result {
	op := cmd.CommandName()
	pin := strings.TrimSpace(cmd.PIN)
	c.state.Forms.OrderPIN = pin
	if pin == "" {
		return c.fail(op, backend.ValidationError(op, "Please enter a PIN"))
	}

	res, err := c.api.JoinOrder(ctx, pin)
	if err != nil {
		return c.fail(op, err)
	}
	c.enterOrder(res.Order)
	c.state.Forms.OrderPIN = ""
	c.loadMenuQuietly(ctx)
	// Rejoining an order restores what the user already had in the cart.
	c.refreshCartQuietly(ctx)

	result := c.succeed(op, res.Message)
	result.PIN = res.Order.PIN
	return result
}

func (c *Controller) loadMenu(ctx context.Context) Result {
	op := LoadMenu{}.CommandName()
	items, err := c.api.MenuItems(ctx)
	if err != nil {
		be := backend.AsError(op, err)
		c.state.MenuError = userMessage(op, be)
		c.logger.Warn("menu load failed", zap.String("kind", string(be.Kind)), zap.Error(be))
		return Result{Command: op, Outcome: OutcomeFailure, Message: c.state.MenuError, Err: be}
	}
	c.state.Menu = groupMenu(items)
	c.state.MenuError = ""
	return Result{Command: op, Outcome: OutcomeSuccess}
}

func (c *Controller) loadMenuQuietly(ctx context.Context) {
	_ = c.loadMenu(ctx)
}

func (c *Controller) refreshCart(ctx context.Context) Result {
	op := RefreshCart{}.CommandName()
	cart, err := c.api.Cart(ctx)
	if err != nil {
		return c.fail(op, err)
	}
	c.replaceCart(cart.Items)
	return Result{Command: op, Outcome: OutcomeSuccess}
}

func (c *Controller) refreshCartQuietly(ctx context.Context) {
	cart, err := c.api.Cart(ctx)
	if err != nil {
		be := backend.AsError("cart", err)
		c.logger.Warn("cart refresh failed", zap.String("kind", string(be.Kind)), zap.Error(be))
		return
	}
	c.replaceCart(cart.Items)
}

// replaceCart discards the local cart; the total is the sum of the server's
// line totals.
func (c *Controller) replaceCart(lines []backend.CartLine) {
	c.state.Cart = append([]backend.CartLine{}, lines...)
	c.state.CartTotal = cartTotal(lines)
}

func (c *Controller) addToCart(ctx context.Context, cmd AddToCart) Result {
	op := cmd.CommandName()
	name := strings.TrimSpace(cmd.ItemName)
	if name == "" {
		return c.fail(op, backend.ValidationError(op, "Menu item is missing"))
	}
	res, err := c.api.AddToCart(ctx, name, cmd.Price, cmd.MenuItemID)
	if err != nil {
		return c.fail(op, err)
	}
	c.replaceCart(res.Items)
	return c.succeed(op, res.Message)
}

func (c *Controller) updateQuantity(ctx context.Context, cmd UpdateQuantity) Result {
	op := cmd.CommandName()
	if cmd.Quantity < 1 {
		return skipped(op)
	}
	name := strings.TrimSpace(cmd.ItemName)
	if name == "" {
		return c.fail(op, backend.ValidationError(op, "Menu item is missing"))
	}
	res, err := c.api.UpdateQuantity(ctx, name, cmd.Quantity)
	if err != nil {
		return c.fail(op, err)
	}
	c.replaceCart(res.Items)
	return c.succeed(op, res.Message)
}

func (c *Controller) removeFromCart(ctx context.Context, cmd RemoveFromCart) Result {
	op := cmd.CommandName()
	name := strings.TrimSpace(cmd.ItemName)
	if name == "" {
		return c.fail(op, backend.ValidationError(op, "Menu item is missing"))
	}
	res, err := c.api.RemoveFromCart(ctx, name)
	if err != nil {
		return c.fail(op, err)
	}
	c.replaceCart(res.Items)
	return c.succeed(op, res.Message)
}

func (c *Controller) leaveOrder(ctx context.Context, cmd LeaveOrder) Result {
	op := cmd.CommandName()
	if !cmd.Confirmed {
		return skipped(op)
	}
	message, err := c.api.LeaveOrder(ctx)
	if err != nil {
		return c.fail(op, err)
	}
	c.clearOrder()
	c.state.Screen = ScreenOrderOptions
	return c.succeed(op, message)
}

func (c *Controller) generateReceipt(ctx context.Context) Result {
	op := GenerateReceipt{}.CommandName()
	receipt, err := c.api.GenerateReceipt(ctx)
	if err != nil {
		return c.fail(op, err)
	}
	return Result{Command: op, Outcome: OutcomeSuccess, Receipt: &receipt}
}
