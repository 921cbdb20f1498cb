// Package email delivers analysis reports through one of three providers:
// Amazon SES, Mailgun, or SendGrid. The provider is picked per call, so the
// same report entrypoint works no matter which account is configured.
package email

import (
	"fmt"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// Provider selects the delivery backend.
type Provider string

const (
	ProviderSES      Provider = "ses"
	ProviderMailgun  Provider = "mailgun"
	ProviderSendgrid Provider = "sendgrid"
)

/*
SendMessage sends one message with both text and HTML bodies to every
recipient, through the chosen provider.

sendEmails is a dry-run guard: when it is nil or false, the message is logged
but never sent. That keeps accidental report runs from spamming real inboxes.
*/
func SendMessage(
	provider Provider,
	sendEmails *bool,
	senderAddress string,
	recipientAddresses []string,
	subject string,
	textBody string,
	htmlBody string,
) (e *xerr.Error) {
	if sendEmails == nil || !*sendEmails {
		tl.Log(
			tl.Notice, palette.PurpleBold, "Dry run: would send '%s' via '%s' to '%s'",
			subject, provider, strings.Join(recipientAddresses, ", "),
		)
		return nil
	}

	if senderAddress == "" || len(recipientAddresses) == 0 {
		err := fmt.Errorf("sender or recipients missing")
		return xerr.NewError(err, "email sender/recipients not provided", senderAddress)
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s '%s' via '%s' to '%s'",
		"Sending", subject, provider, strings.Join(recipientAddresses, ", "),
	)

	switch provider {
	case ProviderSES:
		e = sendViaSES(senderAddress, recipientAddresses, subject, textBody, htmlBody)
	case ProviderMailgun:
		e = sendViaMailgun(senderAddress, recipientAddresses, subject, textBody, htmlBody)
	case ProviderSendgrid:
		e = sendViaSendgrid(senderAddress, recipientAddresses, subject, textBody, htmlBody)
	default:
		err := fmt.Errorf("unknown email provider '%s'", provider)
		e = xerr.NewError(err, "email provider must be ses, mailgun or sendgrid", string(provider))
	}

	if e == nil {
		tl.Log(tl.Info1, palette.Green, "Email '%s' %s", subject, "sent")
	}

	return e
}
