package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/fplbot/internal/domain/slackevent"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// Runner executes tasks in the background without a join point.
type Runner interface {
	Submit(task func()) error
}

type StandingsPoster interface {
	PostLatest(ctx context.Context, channel string) error
}

type EventService struct {
	standings StandingsPoster
	runner    Runner
	logger    *logging.Logger
}

func NewEventService(standings StandingsPoster, runner Runner, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventService{
		standings: standings,
		runner:    runner,
		logger:    logger,
	}
}

// HandleEventCallback queues the standings command when the event text
// matches it. It returns without waiting for the command; the outcome is
// only logged. queued is false when the text did not match or the message
// was posted by a bot.
func (s *EventService) HandleEventCallback(ctx context.Context, cb slackevent.EventCallback) (queued bool, err error) {
	ctx, span := usecaseTracer.Start(ctx, "usecase.EventService.HandleEventCallback",
		attribute.String("slack.event_id", cb.EventID),
		attribute.String("slack.inner_event_type", cb.Event.Type),
	)
	defer span.End()

	if cb.Event.FromBot() {
		s.logger.DebugContext(ctx, "bot message ignored", "event_id", cb.EventID, "bot_id", cb.Event.BotID)
		return false, nil
	}
	if !MatchCommand(cb.Event.Text) {
		s.logger.DebugContext(ctx, "event ignored", "event_id", cb.EventID, "event_type", cb.Event.Type)
		return false, nil
	}

	channel := cb.Event.Channel
	taskID := uuid.NewString()
	taskCtx := context.WithoutCancel(ctx)
	logger := s.logger.With("task_id", taskID, "event_id", cb.EventID, "channel", channel)

	submitErr := s.runner.Submit(func() {
		startedAt := time.Now()
		if err := s.standings.PostLatest(taskCtx, channel); err != nil {
			logger.ErrorContext(taskCtx, "standings command failed", "error", err, "duration", time.Since(startedAt))
			return
		}
		logger.InfoContext(taskCtx, "standings command completed", "duration", time.Since(startedAt))
	})
	if submitErr != nil {
		logger.WarnContext(ctx, "standings command dropped", "error", submitErr)
		return false, fmt.Errorf("%w: submit standings task: %w", ErrDependencyUnavailable, submitErr)
	}

	logger.InfoContext(ctx, "standings command queued", "user", cb.Event.User)
	return true, nil
}
