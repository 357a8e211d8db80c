package mail

import (
	"context"
	"errors"
	"fmt"

	"registrar/pkg/serrors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the part of the SES v2 client used by SESSender.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender delivers messages through Amazon SES.
type SESSender struct {
	client SESAPI
	from   string
}

var _ Sender = (*SESSender)(nil)

// NewSESSender builds an SES client from the default AWS credential chain.
func NewSESSender(ctx context.Context, region, from string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}

	return NewSESSenderWithClient(sesv2.NewFromConfig(cfg), from), nil
}

// NewSESSenderWithClient wraps an existing client.
func NewSESSenderWithClient(client SESAPI, from string) *SESSender {
	return &SESSender{client: client, from: from}
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
			CcAddresses: msg.CC,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body:    &types.Body{Text: &types.Content{Data: aws.String(msg.Body)}},
			},
		},
	})
	if err != nil {
		return sesError(err)
	}

	return nil
}

// sesError maps throttling onto ErrRateLimited and rejected messages onto
// ErrBadRequest so the email worker can snooze or cancel the job.
func sesError(err error) error {
	var (
		tooMany  *types.TooManyRequestsException
		limit    *types.LimitExceededException
		rejected *types.MessageRejected
		bad      *types.BadRequestException
	)
	switch {
	case errors.As(err, &tooMany), errors.As(err, &limit):
		return serrors.Wrap(serrors.ErrRateLimited, err, "ses throttled the request")
	case errors.As(err, &rejected), errors.As(err, &bad):
		return serrors.Wrap(serrors.ErrBadRequest, err, "ses rejected the message")
	default:
		return fmt.Errorf("could not send email through ses: %w", err)
	}
}
