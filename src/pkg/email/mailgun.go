package email

import (
	"context"
	"fmt"
	"os"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/tuumbleweed/xerr"
)

/*
sendViaMailgun delivers through the Mailgun API. Requires the MAILGUN_DOMAIN
and MAILGUN_API_KEY environment variables.
*/
func sendViaMailgun(senderAddress string, recipientAddresses []string, subject, textBody, htmlBody string) (e *xerr.Error) {
	domain := os.Getenv("MAILGUN_DOMAIN")
	apiKey := os.Getenv("MAILGUN_API_KEY")
	if domain == "" || apiKey == "" {
		err := fmt.Errorf("MAILGUN_DOMAIN or MAILGUN_API_KEY is not set")
		return xerr.NewError(err, "mailgun environment is not configured", domain)
	}

	mg := mailgun.NewMailgun(domain, apiKey)

	message := mailgun.NewMessage(senderAddress, subject, textBody, recipientAddresses...)
	message.SetHTML(htmlBody)

	_, _, sendErr := mg.Send(context.Background(), message)
	if sendErr != nil {
		return xerr.NewError(sendErr, "send email via Mailgun", subject)
	}

	return nil
}
