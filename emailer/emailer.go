// Package emailer dispatches transactional mail through SendGrid. All
// sends are fire and forget: failures are logged, never surfaced to the
// customer.
package emailer

import (
	"log"

	"calyx/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Send dispatches a plain-text email in a goroutine.
func Send(to, subject, body string) {
	cfg := config.Load()
	if cfg.SendgridKey == "" || to == "" {
		log.Printf("emailer: skipping %q to %q (no key or recipient)", subject, to)
		return
	}

	go func() {
		from := mail.NewEmail(cfg.CartTitle, cfg.EmailFrom)
		recipient := mail.NewEmail("", to)
		message := mail.NewSingleEmail(from, subject, recipient, body, body)

		client := sendgrid.NewSendClient(cfg.SendgridKey)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("emailer: send %q to %q failed: %v", subject, to, err)
			return
		}
		if resp.StatusCode >= 400 {
			log.Printf("emailer: send %q to %q rejected: %d", subject, to, resp.StatusCode)
		}
	}()
}
