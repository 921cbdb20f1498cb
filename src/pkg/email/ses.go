package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/tuumbleweed/xerr"
)

/*
sendViaSES delivers through Amazon SES v2. Credentials and region come from
the standard AWS environment (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
AWS_REGION) via the default config loader.
*/
func sendViaSES(senderAddress string, recipientAddresses []string, subject, textBody, htmlBody string) (e *xerr.Error) {
	ctx := context.Background()

	awsCfg, loadErr := awsconfig.LoadDefaultConfig(ctx)
	if loadErr != nil {
		return xerr.NewError(loadErr, "load AWS configuration for SES", senderAddress)
	}

	client := sesv2.NewFromConfig(awsCfg)

	_, sendErr := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(senderAddress),
		Destination: &types.Destination{
			ToAddresses: recipientAddresses,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	})
	if sendErr != nil {
		return xerr.NewError(sendErr, "send email via SES", subject)
	}

	return nil
}
