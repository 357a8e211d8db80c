package worker_test

import (
	"context"
	"errors"
	"testing"

	"registrar/internal/worker"
	"registrar/pkg/logger"
	"registrar/pkg/mail"
	mockmail "registrar/pkg/mail/mock"
	"registrar/pkg/serrors"
	"registrar/pkg/storage/memory"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, args worker.SendEmailArgs) *river.Job[worker.SendEmailArgs] {
	return &river.Job[worker.SendEmailArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   args,
	}
}

func newEmail(t *testing.T) worker.SendEmailArgs {
	t.Helper()

	args, err := worker.NewEmail(mail.TemplateStatusWithdrawn, map[string]any{
		"FirstName": "Ada", "RequestedDomain": "city.gov", "BaseURL": "http://localhost",
	}, 3, "ada@city.gov")
	require.NoError(t, err)

	return args
}

func TestNewEmail(t *testing.T) {
	args := newEmail(t)
	require.Equal(t, "SendEmailJob", args.Kind())
	require.Equal(t, mail.TemplateStatusWithdrawn, args.Template)
	require.Equal(t, []string{"ada@city.gov"}, args.To)
	require.Contains(t, args.Subject, "city.gov")

	opts := args.InsertOpts()
	require.Equal(t, 3, opts.MaxAttempts)
	require.True(t, opts.UniqueOpts.ByArgs)
	require.NotContains(t, opts.UniqueOpts.ByState, rivertype.JobStateCancelled)

	_, err := worker.NewEmail("nope", nil, 1, "a@b.gov")
	require.Error(t, err)
}

func TestSendEmailWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mockmail.NewMockSender(ctrl)
	w := worker.NewSendEmailWorker(sender, nil, 0)

	args := newEmail(t)
	sender.EXPECT().Send(gomock.Any(), args.Message()).Return(nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, args)))
}

func TestSendEmailWorker_Work_BadRequestCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mockmail.NewMockSender(ctrl)
	w := worker.NewSendEmailWorker(sender, nil, 0)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(serrors.With(serrors.ErrBadRequest, "bad address"))

	err := w.Work(context.Background(), makeJob(2, newEmail(t)))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestSendEmailWorker_Work_RateLimitedSnoozes(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mockmail.NewMockSender(ctrl)
	w := worker.NewSendEmailWorker(sender, nil, 0)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(serrors.KindOnly(serrors.ErrRateLimited))

	err := w.Work(context.Background(), makeJob(3, newEmail(t)))
	require.Error(t, err)
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
}

func TestSendEmailWorker_Work_OtherErrorsRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mockmail.NewMockSender(ctrl)
	w := worker.NewSendEmailWorker(sender, nil, 0)

	boom := errors.New("boom")
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(boom)

	err := w.Work(context.Background(), makeJob(4, newEmail(t)))
	require.ErrorIs(t, err, boom)
}

func TestSendEmailWorker_Deliver_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mockmail.NewMockSender(ctrl)
	w := worker.NewSendEmailWorker(sender, nil, 0.001)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, w.Deliver(context.Background(), newEmail(t)))

	// the single token is spent, the next send would wait far beyond the deadline
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, w.Deliver(ctx, newEmail(t)))
}

func TestEnqueueEmail(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	err := worker.EnqueueEmail(ctx, st, 2, mail.TemplateStatusWithdrawn, map[string]any{
		"FirstName": "Ada", "RequestedDomain": "city.gov",
	}, "", "ada@city.gov")
	require.NoError(t, err)
	jobs := st.Jobs()
	require.Len(t, jobs, 1)
	args, ok := jobs[0].Args.(worker.SendEmailArgs)
	require.True(t, ok)
	require.Equal(t, []string{"ada@city.gov"}, args.To)
	require.Equal(t, 2, jobs[0].Opts.MaxAttempts)

	// the same email again is deduplicated
	err = worker.EnqueueEmail(ctx, st, 2, mail.TemplateStatusWithdrawn, map[string]any{
		"FirstName": "Ada", "RequestedDomain": "city.gov",
	}, "ada@city.gov")
	require.NoError(t, err)
	require.Len(t, st.Jobs(), 1)

	require.NoError(t, worker.EnqueueEmail(ctx, st, 2, mail.TemplateStatusWithdrawn, nil, ""))
	require.Len(t, st.Jobs(), 1)
}

func TestEnqueueEventEmail(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	data := map[string]any{"FirstName": "Ada", "RequestedDomain": "city.gov"}

	for _, event := range []string{"approve@1", "approve@1", "approve@2"} {
		require.NoError(t, worker.EnqueueEventEmail(ctx, st, 2, event, mail.TemplateStatusApproved, data,
			"ada@city.gov"))
	}

	jobs := st.Jobs()
	require.Len(t, jobs, 2)
	events := make([]string, 0, len(jobs))
	for _, j := range jobs {
		args, ok := j.Args.(worker.SendEmailArgs)
		require.True(t, ok)
		events = append(events, args.Event)
	}
	require.Equal(t, []string{"approve@1", "approve@2"}, events)
}
