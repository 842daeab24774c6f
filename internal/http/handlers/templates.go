package handlers

import (
	"html/template"
	"time"

	"group-order-client/internal/backend"
	"group-order-client/internal/session"
	"group-order-client/internal/utils"
)

type pageData struct {
	View           session.View
	Tab            string
	Receipt        *backend.Receipt
	ArchiveEnabled bool
}

func parsePages() (*template.Template, error) {
	funcs := template.FuncMap{
		"money": utils.FormatMoney,
		"clock": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04 MST")
		},
		"minus1": func(v int) int { return v - 1 },
		"plus1":  func(v int) int { return v + 1 },
	}
	return template.New("pages").Funcs(funcs).Parse(pageTemplates)
}

const pageTemplates = `
{{define "head"}}<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Group Order</title>
  <style>
    body { font-family: Arial, sans-serif; max-width: 760px; margin: 24px auto; padding: 0 12px; color: #222; }
    .hidden { display: none; }
    .notice { padding: 8px 12px; margin: 12px 0; border-radius: 4px; }
    .notice.info { background: #e7f5e9; }
    .notice.error { background: #fdecea; }
    .tabs a { margin-right: 12px; }
    .tabs a.active { font-weight: bold; }
    .row { display: flex; justify-content: space-between; align-items: center; gap: 8px; padding: 4px 0; }
    .muted { color: #777; }
    form.inline { display: inline; }
  </style>
</head>
<body>
  <header class="row">
    <h1>Group Order</h1>
    {{if .View.User}}<div id="current-user">{{.View.UserDisplay}}</div>{{end}}
  </header>
  {{with .View.Notice}}<div class="notice {{.Kind}}" role="status">{{.Text}}</div>{{end}}
{{end}}

{{define "foot"}}
  <script>
    (function () {
      var here = new URL(location.href);
      if (here.searchParams.has("sync")) {
        here.searchParams.delete("sync");
        history.replaceState(null, "", here.pathname + here.search);
      }
      var scheme = location.protocol === "https:" ? "wss://" : "ws://";
      var socket = new WebSocket(scheme + location.host + "/ws/view");
      var shown = null;
      function key(v) {
        return JSON.stringify([v.screen, v.user, v.order, v.menu, v.menuError, v.cart, v.cartTotal]);
      }
      socket.onmessage = function (event) {
        var msg = JSON.parse(event.data);
        var next = key(msg.data || {});
        if (shown === null) { shown = next; return; }
        if (next === shown) { return; }
        var target = new URL(location.href);
        target.searchParams.set("sync", "1");
        location.replace(target.toString());
      };
    })();
  </script>
</body>
</html>
{{end}}

{{define "index"}}{{template "head" .}}
  {{if eq .View.Screen "active-order"}}{{template "active-order" .}}
  {{else if eq .View.Screen "order-options"}}{{template "order-options" .}}
  {{else}}{{template "auth" .}}{{end}}
{{template "foot" .}}{{end}}

{{define "auth"}}
  <section id="auth-section">
    <nav class="tabs">
      <a href="/?tab=login" class="{{if ne .Tab "signup"}}active{{end}}">Login</a>
      <a href="/?tab=signup" class="{{if eq .Tab "signup"}}active{{end}}">Sign Up</a>
    </nav>
    {{if eq .Tab "signup"}}
    <form id="signup-form" method="post" action="/signup">
      <p><label>Name <input name="name" value="{{.View.Forms.SignupName}}" required /></label></p>
      <p><label>Email <input type="email" name="email" value="{{.View.Forms.SignupEmail}}" required /></label></p>
      <p><label>Password <input type="password" name="password" required /></label></p>
      <button type="submit">Sign Up</button>
    </form>
    {{else}}
    <form id="login-form" method="post" action="/login">
      <p><label>Email <input type="email" name="email" value="{{.View.Forms.LoginEmail}}" required /></label></p>
      <p><label>Password <input type="password" name="password" required /></label></p>
      <button type="submit">Login</button>
    </form>
    {{end}}
  </section>
{{end}}

{{define "logout"}}
  <form class="inline" method="post" action="/logout"><button type="submit">Logout</button></form>
{{end}}

{{define "order-options"}}
  <section id="order-options">
    <div class="row"><h2>Start or join an order</h2>{{template "logout" .}}</div>
    <form id="create-order-form" method="post" action="/orders">
      <h3>Create New Order</h3>
      <input name="order-name" placeholder="Order name" value="{{.View.Forms.OrderName}}" />
      <button type="submit">Create Order</button>
    </form>
    <form id="join-order-form" method="post" action="/orders/join">
      <h3>Join Existing Order</h3>
      <input name="order-pin" placeholder="Enter PIN" value="{{.View.Forms.OrderPIN}}" />
      <button type="submit">Join Order</button>
    </form>
  </section>
{{end}}

{{define "active-order"}}
  <section id="active-order">
    <div class="row">
      <h2 id="current-order-info">{{.View.OrderHeader}}</h2>
      <div>
        <a href="/orders/leave">Leave Order</a>
        {{template "logout" .}}
      </div>
    </div>

    <div id="menu-items">
      <h3>Menu</h3>
      {{if .View.MenuError}}
        <p class="notice error">{{.View.MenuError}}</p>
        <form method="post" action="/menu/reload"><button type="submit">Reload menu</button></form>
      {{end}}
      {{range .View.Menu}}
        <h4>{{.Name}}</h4>
        {{range .Items}}
        <div class="row menu-item">
          <div>
            <strong>{{.Name}}</strong>
            {{if .Description}}<div class="muted">{{.Description}}</div>{{end}}
          </div>
          <div>
            {{money .Price}}
            <form class="inline" method="post" action="/cart/add">
              <input type="hidden" name="item_name" value="{{.Name}}" />
              <input type="hidden" name="price" value="{{.Price.String}}" />
              <input type="hidden" name="menu_item_id" value="{{.ID}}" />
              <button type="submit">Add to Cart</button>
            </form>
          </div>
        </div>
        {{end}}
      {{end}}
    </div>

    <div id="cart">
      <h3>Your Cart</h3>
      {{if not .View.Cart}}<p class="muted">Your cart is empty.</p>{{end}}
      {{range .View.Cart}}
      <div class="row cart-item">
        <div>{{.Name}}</div>
        <div>
          <form class="inline" method="post" action="/cart/quantity">
            <input type="hidden" name="item_name" value="{{.Name}}" />
            <input type="hidden" name="quantity" value="{{minus1 .Quantity}}" />
            <button type="submit">-</button>
          </form>
          <span class="quantity">{{.Quantity}}</span>
          <form class="inline" method="post" action="/cart/quantity">
            <input type="hidden" name="item_name" value="{{.Name}}" />
            <input type="hidden" name="quantity" value="{{plus1 .Quantity}}" />
            <button type="submit">+</button>
          </form>
          {{money .Total}}
          <form class="inline" method="post" action="/cart/remove">
            <input type="hidden" name="item_name" value="{{.Name}}" />
            <button type="submit">Remove</button>
          </form>
        </div>
      </div>
      {{end}}
      <p id="cart-total"><strong>{{.View.CartTotalDisplay}}</strong></p>
    </div>

    <p><a href="/receipt">Generate Receipt</a></p>
  </section>
{{end}}

{{define "leave"}}{{template "head" .}}
  <section id="leave-order">
    <h2>{{.View.OrderHeader}}</h2>
    <p>Are you sure you want to leave this order?</p>
    <form method="post" action="/orders/leave">
      <input type="hidden" name="confirm" value="yes" />
      <button type="submit">Leave Order</button>
      <a href="/">Cancel</a>
    </form>
  </section>
{{template "foot" .}}{{end}}

{{define "receipt"}}{{template "head" .}}
  <section id="receipt">
    {{with .Receipt}}
    <h2>Order Receipt</h2>
    <p>Order: {{.OrderName}}<br />PIN: {{.OrderPIN}}<br />{{clock .Timestamp}}</p>
    {{range .Participants}}
      <div class="participant">
        <h3>{{.Name}}</h3>
        {{range .Items}}
        <div class="row"><div>{{.Quantity}}x {{.Name}}</div><div>{{money .Total}}</div></div>
        {{end}}
        <div class="row"><strong>Subtotal</strong><strong>{{money .Subtotal}}</strong></div>
      </div>
    {{else}}
      <p class="muted">No items ordered yet.</p>
    {{end}}
    <div class="row"><h3>Grand Total</h3><h3>{{money .GrandTotal}}</h3></div>
    {{end}}
    <p>
      <a href="/">Back to order</a>
      <a href="/receipt.pdf">Download PDF</a>
      {{if .ArchiveEnabled}}
      <form class="inline" method="post" action="/receipt/archive"><button type="submit">Save to archive</button></form>
      {{end}}
    </p>
  </section>
{{template "foot" .}}{{end}}
`
