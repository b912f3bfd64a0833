package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// StaleCallWorker cancels scheduled calls whose time slot is long past.
// The board assumes at most one active scheduled call per contact, and the
// store does not enforce it, so old scheduled rows would otherwise pile up
// and get silently completed by a later call_done transition.
type StaleCallWorker struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewStaleCallWorker(db *sql.DB) *StaleCallWorker {
	return &StaleCallWorker{
		db:           db,
		staleWindow:  7 * 24 * time.Hour,
		tickInterval: 10 * time.Minute,
	}
}

func (w *StaleCallWorker) Start(ctx context.Context) {
	log.Println("stale call worker started (7d window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.cancelStaleCalls(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("stale call worker stopped")
			return
		case <-ticker.C:
			w.cancelStaleCalls(ctx)
		}
	}
}

func (w *StaleCallWorker) cancelStaleCalls(ctx context.Context) {
	query := `
		UPDATE call_events
		SET
			status = 'canceled',
			updated_at = NOW()
		WHERE
			status = 'scheduled'
			AND scheduled_at < NOW() - INTERVAL '7 days'
		RETURNING id, contact_id, scheduled_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("stale call scan failed: %v", err)
		return
	}
	defer rows.Close()

	canceled := 0
	for rows.Next() {
		var eventID, contactID string
		var scheduledAt time.Time

		if err := rows.Scan(&eventID, &contactID, &scheduledAt); err != nil {
			log.Printf("stale call scan row failed: %v", err)
			continue
		}

		log.Printf("stale call canceled: event=%s contact=%s overdue=%s",
			eventID, contactID, time.Since(scheduledAt).Round(time.Hour))
		canceled++
	}

	if canceled > 0 {
		log.Printf("%d stale call(s) marked canceled", canceled)
	}
}
