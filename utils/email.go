// utils/email.go
package utils

import (
	"fmt"
	"html"

	"go-showcase/config"
	"go-showcase/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers a single HTML email
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// SendEmail sends htmlContent to toEmail
func (m *SendGridMailer) SendEmail(toEmail, subject, htmlContent string) error {
	msg := mail.NewSingleEmail(mail.NewEmail("", m.from), subject, mail.NewEmail("", toEmail), htmlContent, htmlContent)
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// PostmarkMailer sends through Postmark
type PostmarkMailer struct {
	client *postmark.Client
	from   string
}

// SendEmail sends htmlContent to toEmail
func (m *PostmarkMailer) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// EmailService sends shop notifications to the site owner. A service without a
// mailer or recipient silently does nothing.
type EmailService struct {
	mailer   Mailer
	notifyTo string
}

// NewEmailService builds the service for the configured provider
func NewEmailService(cfg config.MailConfig) *EmailService {
	es := &EmailService{notifyTo: cfg.NotifyTo}
	switch cfg.Provider {
	case "sendgrid":
		es.mailer = &SendGridMailer{client: sendgrid.NewSendClient(cfg.SendGridKey), from: cfg.From}
	case "postmark":
		es.mailer = &PostmarkMailer{client: postmark.NewClient(cfg.PostmarkToken, ""), from: cfg.From}
	}
	return es
}

// NewEmailServiceWithMailer wires an explicit mailer
func NewEmailServiceWithMailer(mailer Mailer, notifyTo string) *EmailService {
	return &EmailService{mailer: mailer, notifyTo: notifyTo}
}

// Enabled reports whether notifications are delivered
func (es *EmailService) Enabled() bool {
	return es != nil && es.mailer != nil && es.notifyTo != ""
}

// SendInquiryNotification tells the owner a contact form was submitted
func (es *EmailService) SendInquiryNotification(in models.Inquiry) error {
	if !es.Enabled() {
		return nil
	}
	subject := "New inquiry from " + in.Name
	htmlContent := fmt.Sprintf(
		"<strong>%s</strong> (%s) wrote:<br><br>%s",
		html.EscapeString(in.Name),
		html.EscapeString(in.Email),
		html.EscapeString(in.Message),
	)
	return es.mailer.SendEmail(es.notifyTo, subject, htmlContent)
}

// SendOrderNotification tells the owner an order was placed
func (es *EmailService) SendOrderNotification(o models.Order) error {
	if !es.Enabled() {
		return nil
	}
	price := 0.0
	if o.Product.Price != nil {
		price = *o.Product.Price
	}
	subject := "New order: " + o.Product.Name
	htmlContent := fmt.Sprintf(
		"<strong>Order %s</strong><br><br>Product: %s<br>Price: %.2f<br><br>Deliver to: %s, %s, %s (landmark: %s)<br>Phone: %s",
		o.ID.Hex(),
		html.EscapeString(o.Product.Name),
		price,
		html.EscapeString(o.Customer.FullName),
		html.EscapeString(o.Customer.Address),
		html.EscapeString(o.Customer.Pincode),
		html.EscapeString(o.Customer.Landmark),
		html.EscapeString(o.Customer.PrimaryNumber),
	)
	return es.mailer.SendEmail(es.notifyTo, subject, htmlContent)
}
