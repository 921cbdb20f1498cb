package email

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/tuumbleweed/xerr"
)

/*
sendViaSendgrid delivers through the SendGrid API. Requires the
SENDGRID_API_KEY environment variable. Each recipient gets an individual
message so nobody sees the full recipient list.
*/
func sendViaSendgrid(senderAddress string, recipientAddresses []string, subject, textBody, htmlBody string) (e *xerr.Error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		err := fmt.Errorf("SENDGRID_API_KEY is not set")
		return xerr.NewError(err, "sendgrid environment is not configured", senderAddress)
	}

	client := sendgrid.NewSendClient(apiKey)
	from := mail.NewEmail("", senderAddress)

	for _, recipientAddress := range recipientAddresses {
		to := mail.NewEmail("", recipientAddress)
		message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)

		response, sendErr := client.Send(message)
		if sendErr != nil {
			return xerr.NewError(sendErr, "send email via SendGrid", recipientAddress)
		}
		if e = checkSendgridResponse(response, recipientAddress); e != nil {
			return e
		}
	}

	return nil
}

// checkSendgridResponse treats any non-2xx API status as a failure.
func checkSendgridResponse(response *rest.Response, recipientAddress string) *xerr.Error {
	if response == nil {
		err := fmt.Errorf("empty response from SendGrid")
		return xerr.NewError(err, "no response from SendGrid", recipientAddress)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("sendgrid returned status %d", response.StatusCode)
		return xerr.NewError(err, "SendGrid rejected the message", response.Body)
	}
	return nil
}
