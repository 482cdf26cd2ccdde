package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultDebounce пауза перед автоматической синхронизацией после правки
const DefaultDebounce = 2 * time.Second

// AutoSyncer запускает SyncAll после локальных изменений. Запросы, пришедшие
// во время паузы или раунда, схлопываются в один следующий раунд.
type AutoSyncer struct {
	svc      Service
	status   StatusStore
	logger   *slog.Logger
	trigger  chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	debounce time.Duration
	pending  atomic.Bool
}

// NewAutoSyncer создает фоновый синхронизатор
func NewAutoSyncer(svc Service, status StatusStore, logger *slog.Logger, debounce time.Duration) *AutoSyncer {
	return &AutoSyncer{
		svc:      svc,
		status:   status,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
		debounce: debounce,
	}
}

// Trigger запрашивает синхронизацию, не блокируясь
func (a *AutoSyncer) Trigger() {
	a.pending.Store(true)
	select {
	case a.trigger <- struct{}{}:
	default:
	}
}

// Start запускает цикл обработки запросов до Stop или отмены ctx
func (a *AutoSyncer) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})

	go func() {
		defer close(a.done)
		a.loop(ctx)
	}()
}

// Stop останавливает цикл и ждет завершения текущего раунда
func (a *AutoSyncer) Stop() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
}

// Flush останавливает цикл и, если запрос еще не обработан, выполняет
// синхронизацию сразу. Нужен короткоживущим процессам вроде CLI.
func (a *AutoSyncer) Flush(ctx context.Context) {
	a.Stop()
	if a.pending.Swap(false) {
		a.run(ctx)
	}
}

func (a *AutoSyncer) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.trigger:
		}

		if a.debounce > 0 {
			timer := time.NewTimer(a.debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		if !a.pending.Swap(false) {
			continue
		}
		a.run(ctx)
	}
}

func (a *AutoSyncer) run(ctx context.Context) {
	st := a.status.Get()
	if !st.Enabled || !st.Authenticated {
		a.logger.Debug("Auto sync skipped", "enabled", st.Enabled, "authenticated", st.Authenticated)
		return
	}

	if _, err := a.svc.SyncAll(ctx); err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			// Раунд уже идет, повторим после него
			a.Trigger()
			return
		}
		a.logger.Warn("Auto sync failed", "error", err)
	}
}
