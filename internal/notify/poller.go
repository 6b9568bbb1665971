// Package notify keeps the session's notification list current without a
// push channel: a fixed-interval poll fetches the most recent server
// notifications and surfaces only the ones not already recorded in the
// locally persisted seen-id set.
//
// Delivery is best-effort by design: a poll that fails is logged and
// swallowed, and the next tick retries independently. A notification
// that ages out of the server's recent window between successful polls
// is skipped permanently.
package notify

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/session"
	"github.com/jmorales/shopdesk/internal/store"
)

// Fetcher retrieves the most recent notifications for a user and
// organization. *api.Notifications satisfies it.
type Fetcher interface {
	Recent(ctx context.Context, userID, orgID string, limit int) ([]model.Notification, error)
}

// ResultMsg is a tea.Msg sent after a poll that surfaced new
// notifications.
type ResultMsg struct {
	// New holds the genuinely new notifications in server response order.
	New []model.Notification

	// UnreadCount is the unread total after recording them.
	UnreadCount int
}

const (
	// DefaultInterval is the poll cadence when none is configured.
	DefaultInterval = 30 * time.Second

	// DefaultRecentLimit is how many recent notifications each poll requests.
	DefaultRecentLimit = 10

	// pollTimeout is the maximum time allowed for a single poll.
	pollTimeout = 20 * time.Second
)

// Poller runs the background polling loop.
type Poller struct {
	fetcher  Fetcher
	store    store.Store
	sessions session.Provider
	interval time.Duration
	limit    int
	log      zerolog.Logger

	resultCh  chan ResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu       gosync.Mutex
	running  bool
	inFlight bool
}

// New creates a poller. Zero interval and limit fall back to the defaults.
func New(
	fetcher Fetcher,
	st store.Store,
	sessions session.Provider,
	interval time.Duration,
	limit int,
	log zerolog.Logger,
) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Poller{
		fetcher:   fetcher,
		store:     st,
		sessions:  sessions,
		interval:  interval,
		limit:     limit,
		log:       log,
		resultCh:  make(chan ResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that delivers ResultMsg messages to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate poll without waiting for the next tick.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// Channel full; a poll is already pending.
	}
	return nil
}

// loop runs one immediate poll and then polls on a fixed interval until
// stopped. Manual triggers poll out of band.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(context.Background())

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.Poll(context.Background())
		case <-p.triggerCh:
			p.Poll(context.Background())
		}
	}
}

// Poll performs a single fetch-and-diff pass. Without resolved user and
// organization ids it is a silent no-op. A tick that fires while a
// previous poll is still in flight is skipped. All failures are logged
// and swallowed; the next tick retries.
func (p *Poller) Poll(ctx context.Context) {
	sess := p.sessions.Current()
	if sess == nil || sess.Claims.UserID == "" || sess.Claims.OrgID == "" {
		return
	}

	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	fetched, err := p.fetcher.Recent(ctx, sess.Claims.UserID, sess.Claims.OrgID, p.limit)
	if err != nil {
		p.log.Warn().Err(err).Msg("notification poll failed")
		return
	}
	if len(fetched) == 0 {
		return
	}

	seen, err := p.store.SeenIDs(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("reading seen notification ids failed")
		return
	}

	// Surface exactly the fetched ids not already seen, preserving
	// server response order.
	fresh := make([]model.Notification, 0, len(fetched))
	allIDs := make([]string, 0, len(fetched))
	for _, n := range fetched {
		allIDs = append(allIDs, n.ID)
		if _, ok := seen[n.ID]; !ok {
			fresh = append(fresh, n)
		}
	}

	if len(fresh) > 0 {
		if err := p.store.InsertNotifications(ctx, fresh); err != nil {
			p.log.Warn().Err(err).Msg("recording notifications failed")
			return
		}
	}

	// The persisted set becomes seen ∪ fetched; re-marking an
	// already-seen id is a no-op.
	if err := p.store.MarkSeen(ctx, allIDs); err != nil {
		p.log.Warn().Err(err).Msg("marking notifications seen failed")
		return
	}

	if len(fresh) == 0 {
		return
	}

	unread, err := p.store.UnreadCount(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("counting unread notifications failed")
	}

	p.sendResult(ResultMsg{New: fresh, UnreadCount: unread})
}

// sendResult sends a ResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg ResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}

// waitForResult returns a tea.Cmd that waits for the next poll result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next poll
// result. Call it after processing a ResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
