package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"courseapi/config"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendEmail sends an HTML email to the given recipients.
func (m *Mailer) SendEmail(to []string, subject string, htmlBody string) error {
	from := m.cfg.EmailSender
	password := m.cfg.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Course Support <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, m.cfg.SMTPHost)

	err := smtp.SendMail(m.cfg.SMTPHost+":"+m.cfg.SMTPPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("[MAILER] error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendPaymentReceipt sends a best-effort payment confirmation. Failures are
// logged, never surfaced to the payment flow.
func (m *Mailer) SendPaymentReceipt(email, orderID string, amount int64, currency string) {
	if m.cfg.EmailSender == "" {
		return
	}

	displayAmount := fmt.Sprintf("%.2f %s", float64(amount)/100, currency)
	body := fmt.Sprintf(`
	<h2>Payment received</h2>
	<p>Thank you for your purchase! Your payment of <b>%s</b> has been confirmed.</p>
	<p>Order reference: <b>%s</b></p>
	<p>You now have lifetime access to the course. Happy learning!</p>`,
		displayAmount, orderID)

	if err := m.SendEmail([]string{email}, "Your course purchase is confirmed", body); err != nil {
		log.Printf("[MAILER] failed to send receipt for order %s: %v", orderID, err)
	}
}
