package services

import (
	"sync"
	"time"

	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
)

const defaultArchiveRecencyWindow = 5 * time.Second

// Reconciler is the recomputation trigger for the view partitions. Its
// version counter advances whenever the authoritative state may have
// drifted from what subscribers last rendered: an external edit signal, a
// change to the archived set, or a lifecycle operation completing (once
// immediately, then again after the settle delays to absorb the store's
// read-after-write lag).
//
// Signals are coalesced per subscriber: each subscriber channel holds at
// most the newest signal, so a slow consumer re-queries once instead of
// replaying every intermediate version.
type Reconciler struct {
	mu          sync.Mutex
	version     int64
	subs        map[int]chan portssvc.RefreshSignal
	nextSubID   int
	timers      map[int]*time.Timer
	nextTimerID int
	lastEdited  time.Time
	closed      bool

	recencyWindow time.Duration
	now           func() time.Time
}

// NewReconciler creates a reconciler with the given archive recency
// window; zero falls back to the 5s default.
func NewReconciler(recencyWindow time.Duration) *Reconciler {
	if recencyWindow <= 0 {
		recencyWindow = defaultArchiveRecencyWindow
	}
	return &Reconciler{
		subs:          make(map[int]chan portssvc.RefreshSignal),
		timers:        make(map[int]*time.Timer),
		recencyWindow: recencyWindow,
		now:           time.Now,
	}
}

// Subscribe registers a listener for refresh signals. The returned func
// unsubscribes; it is safe to call more than once.
func (r *Reconciler) Subscribe() (<-chan portssvc.RefreshSignal, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	ch := make(chan portssvc.RefreshSignal, 1)
	r.subs[id] = ch

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Version returns the current trigger counter value.
func (r *Reconciler) Version() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Bump advances the counter and notifies all subscribers.
func (r *Reconciler) Bump(suggestArchivedView bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bumpLocked(suggestArchivedView)
}

func (r *Reconciler) bumpLocked(suggestArchivedView bool) {
	if r.closed {
		return
	}
	r.version++
	sig := portssvc.RefreshSignal{Version: r.version, SuggestArchivedView: suggestArchivedView}
	for _, ch := range r.subs {
		// Replace any undelivered signal with the newest one. Sends only
		// happen under the mutex, so after the drain there is room.
		select {
		case <-ch:
		default:
		}
		ch <- sig
	}
}

// ScheduleBump arranges a recomputation after the given delay. The timer
// is owned by the reconciler and stopped on Close.
func (r *Reconciler) ScheduleBump(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	id := r.nextTimerID
	r.nextTimerID++
	r.timers[id] = time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.timers, id)
		r.bumpLocked(false)
	})
}

// NoteLastEdited feeds an externally supplied "last edited" signal; a
// changed timestamp forces a recomputation. Repeats of the same
// timestamp are ignored.
func (r *Reconciler) NoteLastEdited(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.IsZero() || t.Equal(r.lastEdited) {
		return
	}
	r.lastEdited = t
	r.bumpLocked(false)
}

// NoteArchived reports that something was archived at the given time.
// When the archive is younger than the recency window the signal carries
// the suggestion to surface the archived view.
func (r *Reconciler) NoteArchived(archivedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	suggest := r.now().Sub(archivedAt) < r.recencyWindow
	r.bumpLocked(suggest)
}

// Close stops all pending timers and drops subscribers. Further calls on
// a closed reconciler are no-ops.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for id, timer := range r.timers {
		timer.Stop()
		delete(r.timers, id)
	}
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}

var _ portssvc.ReconcilerSvcFacade = (*Reconciler)(nil)
