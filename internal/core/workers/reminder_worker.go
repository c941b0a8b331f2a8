package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type ReminderChecker interface {
	CheckDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)
}

type Notifier interface {
	Notify(ctx context.Context, r domain.Reminder)
}

type ReminderWorker struct {
	checker  ReminderChecker
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger

	wg sync.WaitGroup
}

func NewReminderWorker(checker ReminderChecker, notifier Notifier, interval time.Duration, logger *zap.Logger) *ReminderWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{
		checker:  checker,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
		logger:   logger.Named("reminders"),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.Check(ctx)
		for {
			select {
			case <-ticker.C:
				w.Check(ctx)
			case <-ctx.Done():
				w.logger.Info("reminder worker shutting down")
				return
			}
		}
	}()
}

func (w *ReminderWorker) Wait() {
	w.wg.Wait()
}

// Check fires every reminder due now. It returns how many fired.
func (w *ReminderWorker) Check(ctx context.Context) int {
	due, err := w.checker.CheckDue(ctx, w.now())
	if err != nil {
		w.logger.Error("failed to check reminders", zap.Error(err))
		return 0
	}
	for _, r := range due {
		w.notifier.Notify(ctx, r)
	}
	return len(due)
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// VoiceNotifier logs due reminders and reads them aloud when a speaker is set.
type VoiceNotifier struct {
	speaker Speaker
	logger  *zap.Logger
}

func NewVoiceNotifier(speaker Speaker, logger *zap.Logger) *VoiceNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoiceNotifier{speaker: speaker, logger: logger.Named("notifier")}
}

func (n *VoiceNotifier) Notify(ctx context.Context, r domain.Reminder) {
	n.logger.Info("reminder due",
		zap.String("id", r.ID),
		zap.String("type", string(r.Type)),
		zap.String("title", r.Title),
	)
	if n.speaker == nil {
		return
	}

	text := r.Title
	if r.Message != "" {
		text += ". " + r.Message
	}
	if err := n.speaker.Speak(ctx, text); err != nil {
		n.logger.Warn("could not speak reminder", zap.String("id", r.ID), zap.Error(err))
	}
}
