package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registrar/pkg/logger"
	"registrar/pkg/mail"
	"registrar/pkg/metrics"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// emailUniquePeriod is the window in which an identical email is sent only once.
const emailUniquePeriod = 24 * time.Hour

// SendEmailArgs is a rendered email waiting to be delivered. The whole message
// is the unique key, so the same email to the same recipients is queued at
// most once per day. Event tells apart emails that repeat on purpose, like a
// second approval of the same request.
type SendEmailArgs struct {
	Template string   `json:"template"`
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Event    string   `json:"event,omitempty"`

	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the email worker.
func (args SendEmailArgs) Kind() string { return "SendEmailJob" }

// InsertOpts makes the job unique by its arguments for a day in every state
// but discarded and cancelled, so a failed email can be queued again.
func (args SendEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: emailUniquePeriod,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}

// Message returns the email carried by the job.
func (args SendEmailArgs) Message() mail.Message {
	return mail.Message{To: args.To, CC: args.CC, Subject: args.Subject, Body: args.Body}
}

// NewEmail renders the template and returns the job arguments delivering it.
func NewEmail(template string, data any, maxAttempts int, to ...string) (SendEmailArgs, error) {
	msg, err := mail.Render(template, data, to...)
	if err != nil {
		return SendEmailArgs{}, fmt.Errorf("could not render email: %w", err)
	}

	return SendEmailArgs{
		Template:    template,
		To:          msg.To,
		CC:          msg.CC,
		Subject:     msg.Subject,
		Body:        msg.Body,
		maxAttempts: maxAttempts,
	}, nil
}

// EnqueueEmail renders the template and adds the delivery job through jobs,
// which is usually the transaction that changed the data the email describes.
// Recipients without an address are dropped; nothing is queued when none remain.
func EnqueueEmail(ctx context.Context, jobs storage.JobStorage, maxAttempts int,
	template string, data any, to ...string) error {
	return EnqueueEventEmail(ctx, jobs, maxAttempts, "", template, data, to...)
}

// EnqueueEventEmail is EnqueueEmail for an email tied to event. Emails of
// different events are never deduplicated against each other.
func EnqueueEventEmail(ctx context.Context, jobs storage.JobStorage, maxAttempts int,
	event, template string, data any, to ...string) error {
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		logger.Warn(ctx, "email has no recipients", zap.String("template", template))

		return nil
	}

	args, err := NewEmail(template, data, maxAttempts, recipients...)
	if err != nil {
		return err
	}
	args.Event = event
	if _, err := jobs.AddJob(ctx, args, nil); err != nil {
		return fmt.Errorf("could not add email job: %w", err)
	}

	return nil
}

// SendEmailWorker delivers queued emails through a mail.Sender. Deliveries
// are paced by a token bucket so the mail backend's send rate is respected
// across concurrent jobs.
type SendEmailWorker struct {
	river.WorkerDefaults[SendEmailArgs]

	sender   mail.Sender
	recorder *metrics.Recorder
	limiter  *rate.Limiter
}

// NewSendEmailWorker creates a worker sending at most perSecond emails per
// second. A non-positive rate disables pacing.
func NewSendEmailWorker(sender mail.Sender, recorder *metrics.Recorder, perSecond float64) *SendEmailWorker {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &SendEmailWorker{
		sender:   sender,
		recorder: recorder,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Work delivers a single email and maps sender errors onto River actions.
func (w *SendEmailWorker) Work(ctx context.Context, job *river.Job[SendEmailArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("template", job.Args.Template))

	return w.Deliver(ctx, job.Args)
}

// Deliver sends the email right away. The in-memory job queue calls it
// directly since there is no River client without a database.
func (w *SendEmailWorker) Deliver(ctx context.Context, args SendEmailArgs) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("could not wait for send budget: %w", err)
	}

	err := w.sender.Send(ctx, args.Message())
	w.recorder.EmailSent(ctx, args.Template, err)
	if err != nil {
		logger.Error(ctx, "could not send email", zap.Strings("to", args.To), zap.Error(err))

		switch {
		case errors.Is(err, serrors.ErrBadRequest):
			return river.JobCancel(err) //nolint: wrapcheck
		case errors.Is(err, serrors.ErrRateLimited):
			return river.JobSnooze(time.Minute) //nolint: wrapcheck
		default:
			return fmt.Errorf("could not send email: %w", err)
		}
	}

	logger.Info(ctx, "email sent", zap.Strings("to", args.To), zap.String("subject", args.Subject))

	return nil
}
