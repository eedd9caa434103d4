package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"handcrafted_gifts/internal/domain/entities"
)

const (
	shopName          = "Handcrafted Gifts"
	contactAckSubject = "Thank you for contacting us!"
	deliveryDayLayout = "2/1/2006"
)

type statusCopy struct {
	Emoji   string
	Message string
	// Extra is appended to WhatsApp updates; ExtraHTML is its email paragraph.
	Extra     string
	ExtraHTML string
}

var statusCopies = map[entities.OrderStatus]statusCopy{
	entities.OrderStatusConfirmed:  {Emoji: "✅", Message: "Your order has been confirmed and we're preparing it! 🎨"},
	entities.OrderStatusInProgress: {Emoji: "🎨", Message: "Great news! We've started working on your order! 🎨"},
	entities.OrderStatusCompleted:  {Emoji: "✨", Message: "Your order is ready and will be shipped soon! 📦"},
	entities.OrderStatusShipped: {
		Emoji:     "📦",
		Message:   "Your order is on its way to you! 🚚",
		Extra:     "Track your package and expect delivery within 2-3 days.",
		ExtraHTML: "Your package is on its way! You can expect delivery within 2-3 days.",
	},
	entities.OrderStatusDelivered: {
		Emoji:     "🎉",
		Message:   "Your order has been delivered! We hope you love it! 🎉",
		Extra:     "Thank you for choosing Handcrafted Gifts! We'd love to see how you're enjoying your purchase. 📸",
		ExtraHTML: "We hope you absolutely love your handcrafted item! If you're happy with your purchase, we'd love to see a photo. 📸",
	},
	entities.OrderStatusCancelled: {Emoji: "❌", Message: "Your order has been cancelled. If you have any questions, please contact us."},
}

func copyFor(s entities.OrderStatus) statusCopy {
	if c, ok := statusCopies[s]; ok {
		return c
	}
	return statusCopy{Emoji: "📋", Message: "Your order status has been updated."}
}

func trackURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/track"
}

func confirmationText(o entities.Order, siteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Order Confirmed!\n\nHi %s!\n\n", o.Customer.Name)
	fmt.Fprintf(&b, "Your order #%s has been confirmed.\nTotal Amount: ₹%s\n\n", o.OrderNumber, o.TotalAmount.String())
	b.WriteString("Order Details:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s (Qty: %d)\n", it.ProductName, it.Quantity)
	}
	fmt.Fprintf(&b, "\nEstimated Delivery: %s\n\n", o.EstimatedDelivery.Format(deliveryDayLayout))
	fmt.Fprintf(&b, "We'll keep you updated on your order status. Thank you for choosing %s! 💝\n\n", shopName)
	fmt.Fprintf(&b, "Track your order: %s", trackURL(siteURL))
	return b.String()
}

func statusUpdateText(o entities.Order, siteURL string) string {
	c := copyFor(o.Status)
	var b strings.Builder
	fmt.Fprintf(&b, "%s Order Update\n\nHi %s!\n\n", c.Emoji, o.Customer.Name)
	fmt.Fprintf(&b, "Order #%s - Status Update:\n%s\n\n", o.OrderNumber, c.Message)
	if c.Extra != "" {
		b.WriteString(c.Extra + "\n\n")
	}
	fmt.Fprintf(&b, "Track your order: %s", trackURL(siteURL))
	return b.String()
}

const emailLayout = `{{define "layout"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #FFE4E1 0%, #E6E6FA 100%); padding: 30px; text-align: center;">
    <h1 style="color: #4A4A4A; margin: 0;">{{.Heading}}</h1>
  </div>
  <div style="padding: 30px; background: white;">
    {{template "body" .}}
    <p>With love,<br>Handcrafted Gifts Team 💝</p>
  </div>
</div>{{end}}`

var (
	confirmationEmail = template.Must(template.Must(template.New("confirmation").Parse(emailLayout)).Parse(`{{define "body"}}
    <p>Hi {{.Order.Customer.Name}},</p>
    <p>Thank you for your order! We're excited to create something special for you.</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
      <h3 style="margin-top: 0; color: #4A4A4A;">Order Details</h3>
      <p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
      <p><strong>Total Amount:</strong> ₹{{.Order.TotalAmount.String}}</p>
      <p><strong>Estimated Delivery:</strong> {{.Delivery}}</p>
      <h4>Items:</h4>
      <ul>{{range .Order.Items}}
        <li>{{.ProductName}} - Quantity: {{.Quantity}}{{if .Customization.Text}}<br><small>Customization: {{.Customization.Text}}</small>{{end}}</li>{{end}}
      </ul>
    </div>
    <p>We'll send you regular updates about your order status via WhatsApp and email.</p>
    <p style="text-align: center;"><a href="{{.TrackURL}}">Track Your Order</a></p>
    <p>If you have any questions, feel free to reach out to us!</p>{{end}}`))

	statusEmail = template.Must(template.Must(template.New("status").Parse(emailLayout)).Parse(`{{define "body"}}
    <p>Hi {{.Order.Customer.Name}},</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0; text-align: center;">
      <h3 style="margin-top: 0; color: #4A4A4A;">Order #{{.Order.OrderNumber}}</h3>
      <p style="font-size: 18px; color: #FFB6C1; font-weight: bold;">{{.Copy.Message}}</p>
    </div>{{if .Copy.ExtraHTML}}
    <p>{{.Copy.ExtraHTML}}</p>{{end}}
    <p style="text-align: center;"><a href="{{.TrackURL}}">Track Your Order</a></p>
    <p>Thank you for choosing Handcrafted Gifts!</p>{{end}}`))

	contactOwnerEmail = template.Must(template.New("contact_owner").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #e11d48;">New Contact Form Submission</h2>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>{{if .Phone}}
    <p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
    <p><strong>Subject:</strong> {{if .Subject}}{{.Subject}}{{else}}Not specified{{end}}</p>
    <p><strong>Message:</strong></p>
    <div style="background: white; padding: 15px; border-radius: 4px; border-left: 4px solid #e11d48; white-space: pre-wrap;">{{.Message}}</div>
  </div>
  <p style="color: #64748b; font-size: 12px; margin-top: 20px;">This email was sent from your website contact form.</p>
</div>`))

	contactAckEmail = template.Must(template.New("contact_ack").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #e11d48;">Thank You for Reaching Out!</h2>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px;">
    <p>Dear {{.Name}},</p>
    <p>Thank you for contacting us! We have received your message and will get back to you within 24-48 hours.</p>
    <p><strong>Your Message:</strong></p>
    <div style="background: white; padding: 15px; border-radius: 4px; border-left: 4px solid #e11d48; white-space: pre-wrap;">{{.Message}}</div>
    <p style="margin-top: 20px;">Best regards,<br>The Handcrafted Gifts Team</p>
  </div>
</div>`))
)

type orderEmailData struct {
	Heading  string
	Order    entities.Order
	Copy     statusCopy
	Delivery string
	TrackURL string
}

func render(t *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func confirmationHTML(o entities.Order, siteURL string) (string, error) {
	return render(confirmationEmail, "layout", orderEmailData{
		Heading:  "Order Confirmed! 🎉",
		Order:    o,
		Delivery: o.EstimatedDelivery.Format(deliveryDayLayout),
		TrackURL: trackURL(siteURL),
	})
}

func statusUpdateHTML(o entities.Order, siteURL string) (string, error) {
	c := copyFor(o.Status)
	return render(statusEmail, "layout", orderEmailData{
		Heading:  "Order Update " + c.Emoji,
		Order:    o,
		Copy:     c,
		TrackURL: trackURL(siteURL),
	})
}

func contactOwnerHTML(m entities.ContactMessage) (string, error) {
	return render(contactOwnerEmail, "contact_owner", m)
}

func contactAckHTML(m entities.ContactMessage) (string, error) {
	return render(contactAckEmail, "contact_ack", m)
}

func contactOwnerSubject(m entities.ContactMessage) string {
	if m.Subject == "" {
		return "New Contact Form: No Subject"
	}
	return "New Contact Form: " + m.Subject
}
