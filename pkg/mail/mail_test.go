package mail_test

import (
	"context"
	"errors"
	"testing"

	"registrar/pkg/mail"
	"registrar/pkg/serrors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput,
	_ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}

	return &sesv2.SendEmailOutput{MessageId: aws.String("id")}, nil
}

func TestRender(t *testing.T) {
	msg, err := mail.Render(mail.TemplateStatusActionNeeded, map[string]any{
		"FirstName":       "Ada",
		"RequestedDomain": "city.gov",
		"Reason":          "Missing documents",
		"BaseURL":         "https://registrar.example",
		"RequestID":       "abc",
	}, "ada@example.gov")
	require.NoError(t, err)
	require.Equal(t, []string{"ada@example.gov"}, msg.To)
	require.Equal(t, "Action needed for your .gov domain request: city.gov", msg.Subject)
	require.Contains(t, msg.Body, "Hi, Ada.")
	require.Contains(t, msg.Body, "REASON: Missing documents")
	require.Contains(t, msg.Body, "https://registrar.example/domain-request/abc/edit")

	msg, err = mail.Render(mail.TemplateTransitionDomains, map[string]any{
		"Domains": []string{"a.gov", "b.gov"},
		"BaseURL": "https://registrar.example",
	}, "owner@example.gov")
	require.NoError(t, err)
	require.Contains(t, msg.Body, "following .gov domains:")
	require.Contains(t, msg.Body, "  a.gov\n  b.gov")

	_, err = mail.Render("missing", nil)
	require.Error(t, err)
}

func TestRender_AllTemplates(t *testing.T) {
	data := map[string]any{
		"FirstName": "Ada", "RequestedDomain": "city.gov", "SubmittedDate": "2024-05-10",
		"BaseURL": "http://localhost", "RequestID": "1", "DomainID": "2", "Reason": "",
		"DomainName": "city.gov", "RequestorEmail": "", "ManagerEmail": "m@example.gov",
		"Domains": []string{"city.gov"},
	}
	for _, name := range []string{
		mail.TemplateSubmissionConfirmation, mail.TemplateStatusInReview, mail.TemplateStatusActionNeeded,
		mail.TemplateStatusApproved, mail.TemplateStatusRejected, mail.TemplateStatusWithdrawn,
		mail.TemplateDomainInvitation, mail.TemplateDomainManagerAdded, mail.TemplateTransitionDomains,
	} {
		msg, err := mail.Render(name, data, "x@example.gov")
		require.NoError(t, err, name)
		require.NotEmpty(t, msg.Subject, name)
		require.NotEmpty(t, msg.Body, name)
	}
}

func TestSESSender(t *testing.T) {
	ctx := context.Background()
	client := &fakeSES{}
	sender := mail.NewSESSenderWithClient(client, "help@get.gov")

	err := sender.Send(ctx, mail.Message{To: []string{"a@example.gov"}, Subject: "Hello", Body: "Body"})
	require.NoError(t, err)
	require.Equal(t, "help@get.gov", aws.ToString(client.input.FromEmailAddress))
	require.Equal(t, []string{"a@example.gov"}, client.input.Destination.ToAddresses)
	require.Equal(t, "Hello", aws.ToString(client.input.Content.Simple.Subject.Data))
	require.Equal(t, "Body", aws.ToString(client.input.Content.Simple.Body.Text.Data))

	client.err = errors.New("connection reset")
	require.ErrorIs(t, sender.Send(ctx, mail.Message{To: []string{"a@example.gov"}}), client.err)

	client.err = &types.TooManyRequestsException{Message: aws.String("slow down")}
	err = sender.Send(ctx, mail.Message{To: []string{"a@example.gov"}})
	require.ErrorIs(t, err, serrors.ErrRateLimited)

	client.err = &types.MessageRejected{Message: aws.String("bad address")}
	err = sender.Send(ctx, mail.Message{To: []string{"a@example.gov"}})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestLogSender(t *testing.T) {
	require.NoError(t, mail.LogSender{}.Send(context.Background(), mail.Message{To: []string{"a@example.gov"}}))
}
