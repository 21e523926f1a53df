package midiout

import (
	"container/heap"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quaverlabs/pitchroll/logging"
	"github.com/quaverlabs/pitchroll/music"
	"github.com/quaverlabs/pitchroll/roll"
)

// SessionState tracks one playback session through its life cycle.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateScheduled
	StatePlaying
	StateFinished
	StateCancelled
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session is a handle on one PlaySong request. Progress counters and state
// may be polled from any goroutine; Done is closed once the session reaches
// a terminal state.
type Session struct {
	player *Player
	total  int
	state  atomic.Int32
	played atomic.Int64
	done   chan struct{}
}

// State returns the session's current state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// NotesPlayed returns how many play-deadlines have fired so far.
func (s *Session) NotesPlayed() int {
	return int(s.played.Load())
}

// TotalNotes returns how many play-deadlines the session was created with.
func (s *Session) TotalNotes() int {
	return s.total
}

// Done is closed when the session finishes or is cancelled.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Cancel stops dispatching the session's remaining play-deadlines. Notes
// already sounding still receive their note-off. Cancelling a session that
// already ended is a no-op.
func (s *Session) Cancel() {
	select {
	case s.player.cmds <- command{kind: cmdCancel, session: s}:
	case <-s.done:
	case <-s.player.stopped:
	}
}

// finish moves the session to a terminal state. Dispatch goroutine only.
func (s *Session) finish(state SessionState) {
	if current := s.State(); current == StateFinished || current == StateCancelled {
		return
	}
	s.state.Store(int32(state))
	close(s.done)
}

// scheduledEvent is one play-deadline: at the absolute instant `at`, the
// note starts sounding for `duration`.
type scheduledEvent struct {
	at       time.Time
	note     Note
	duration time.Duration
}

// eventHeap is a min-heap of play-deadlines, earliest first.
type eventHeap []scheduledEvent

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)        { *h = append(*h, x.(scheduledEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type commandKind int

const (
	cmdPlaySong commandKind = iota
	cmdPlayNote
	cmdCancel
	cmdAllOff
	cmdClose
)

type command struct {
	kind     commandKind
	events   []scheduledEvent
	session  *Session
	note     Note
	duration time.Duration
}

// Player replays key-press intervals as timed note-on/note-off commands.
//
// A single dispatch goroutine multiplexes three event sources: pending
// play-deadlines, pending note-off deadlines and the inbound command
// channel. It suspends on a timer armed for the nearest deadline and never
// busy-spins. Only one session drives the sink at a time; scheduling a new
// song cancels the active session and flushes its sounding notes first.
type Player struct {
	sink      Sink
	logger    logging.Logger
	cmds      chan command
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewPlayer starts a player dispatching into the given sink.
func NewPlayer(sink Sink) *Player {
	p := &Player{
		sink:    sink,
		logger:  logging.WithFields(logging.Fields{"component": "midiout"}),
		cmds:    make(chan command),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

// PlaySong schedules every press of every key against a fresh epoch
// captured now and begins dispatch. The interval sets are snapshotted, so
// later edits to the analysis data cannot race an in-flight playback.
func (p *Player) PlaySong(keys map[music.Key]*roll.KeyPresses) *Session {
	epoch := time.Now()

	var events []scheduledEvent
	for key, presses := range keys {
		note := NoteFromKey(key)
		for _, press := range presses.All() {
			events = append(events, scheduledEvent{
				at:       epoch.Add(press.Start()),
				note:     note,
				duration: press.Duration(),
			})
		}
	}

	session := &Session{player: p, total: len(events), done: make(chan struct{})}
	session.state.Store(int32(StateScheduled))

	if !p.submit(command{kind: cmdPlaySong, events: events, session: session}) {
		session.state.Store(int32(StateCancelled))
		close(session.done)
	}
	return session
}

// PlayNote sounds a single key immediately for the given duration.
func (p *Player) PlayNote(key music.Key, duration time.Duration) {
	p.submit(command{kind: cmdPlayNote, note: NoteFromKey(key), duration: duration})
}

// AllSoundOff cancels any active session, drops pending deadlines and
// silences the device with a single controller message.
func (p *Player) AllSoundOff() {
	p.submit(command{kind: cmdAllOff})
}

// Close flushes sounding notes and stops the dispatch goroutine. The
// player must not be used afterwards.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		p.submit(command{kind: cmdClose})
		<-p.stopped
	})
}

func (p *Player) submit(cmd command) bool {
	select {
	case p.cmds <- cmd:
		return true
	case <-p.stopped:
		return false
	}
}

func (p *Player) run() {
	defer close(p.stopped)

	queue := make(eventHeap, 0)
	offs := make(map[Note]time.Time)
	var cur *Session

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		var timerC <-chan time.Time
		if at, ok := nextDeadline(queue, offs); ok {
			timer.Reset(time.Until(at))
			timerC = timer.C
		} else {
			timer.Stop()
		}

		select {
		case cmd := <-p.cmds:
			var stop bool
			cur, stop = p.handle(cmd, &queue, offs, cur)
			if stop {
				return
			}
		case <-timerC:
			cur = p.fireDue(&queue, offs, cur)
		}
	}
}

// nextDeadline returns the earliest pending deadline of either kind.
func nextDeadline(queue eventHeap, offs map[Note]time.Time) (time.Time, bool) {
	var at time.Time
	ok := false
	if len(queue) > 0 {
		at, ok = queue[0].at, true
	}
	for _, deadline := range offs {
		if !ok || deadline.Before(at) {
			at, ok = deadline, true
		}
	}
	return at, ok
}

func (p *Player) handle(cmd command, queue *eventHeap, offs map[Note]time.Time, cur *Session) (*Session, bool) {
	switch cmd.kind {
	case cmdPlaySong:
		// The new session takes over the device: flush the previous
		// session's sounding notes so two sessions never double-drive it.
		p.flushOffs(offs)
		*queue = (*queue)[:0]
		if cur != nil {
			cur.finish(StateCancelled)
		}

		cur = cmd.session
		for _, ev := range cmd.events {
			heap.Push(queue, ev)
		}
		p.logger.Info("session scheduled", logging.Fields{"notes": len(cmd.events)})
		if len(cmd.events) == 0 {
			cur.finish(StateFinished)
			cur = nil
		}

	case cmdPlayNote:
		p.noteOn(cmd.note, offs, time.Now().Add(cmd.duration))

	case cmdCancel:
		if cur != nil && cur == cmd.session {
			*queue = (*queue)[:0]
			p.flushOffs(offs)
			cur.finish(StateCancelled)
			p.logger.Info("session cancelled", logging.Fields{"played": cur.NotesPlayed()})
			cur = nil
		}

	case cmdAllOff:
		*queue = (*queue)[:0]
		clear(offs)
		if err := p.sink.Send(allSoundOffMessage()); err != nil {
			p.logger.Error(err, "all-sound-off send failed")
		}
		if cur != nil {
			cur.finish(StateCancelled)
			cur = nil
		}

	case cmdClose:
		*queue = (*queue)[:0]
		p.flushOffs(offs)
		if cur != nil {
			cur.finish(StateCancelled)
		}
		return nil, true
	}

	return cur, false
}

// fireDue dispatches every deadline that has come due. Play-deadlines go
// first so a same-instant re-press extends the sounding note instead of
// racing its note-off.
func (p *Player) fireDue(queue *eventHeap, offs map[Note]time.Time, cur *Session) *Session {
	now := time.Now()

	for queue.Len() > 0 && !(*queue)[0].at.After(now) {
		ev := heap.Pop(queue).(scheduledEvent)
		p.noteOn(ev.note, offs, ev.at.Add(ev.duration))
		if cur != nil {
			cur.state.CompareAndSwap(int32(StateScheduled), int32(StatePlaying))
			cur.played.Add(1)
		}
	}

	for note, deadline := range offs {
		if !deadline.After(now) {
			p.noteOff(note)
			delete(offs, note)
		}
	}

	if cur != nil && queue.Len() == 0 && len(offs) == 0 {
		cur.finish(StateFinished)
		p.logger.Info("session finished", logging.Fields{"played": cur.NotesPlayed()})
		cur = nil
	}
	return cur
}

// noteOn starts the note sounding until `off`. A note that is already
// sounding is not retriggered; its off-deadline only ever moves later, so
// overlapping presses of one key extend the tone rather than cutting it
// off.
func (p *Player) noteOn(note Note, offs map[Note]time.Time, off time.Time) {
	pending, sounding := offs[note]
	if sounding {
		if off.After(pending) {
			offs[note] = off
		}
		return
	}

	if err := p.sink.Send(noteOnMessage(note)); err != nil {
		p.logger.Error(err, "note-on send failed", logging.Fields{"note": note.String()})
	}
	offs[note] = off
}

// noteOff emits the note-off command. A failed send is logged and the note
// is considered off regardless: a stuck pending entry would retry forever,
// which is worse than one dropped command.
func (p *Player) noteOff(note Note) {
	if err := p.sink.Send(noteOffMessage(note)); err != nil {
		p.logger.Error(err, "note-off send failed", logging.Fields{"note": note.String()})
	}
}

// flushOffs immediately releases every sounding note, lowest note first.
func (p *Player) flushOffs(offs map[Note]time.Time) {
	if len(offs) == 0 {
		return
	}
	notes := make([]Note, 0, len(offs))
	for note := range offs {
		notes = append(notes, note)
	}
	slices.Sort(notes)
	for _, note := range notes {
		p.noteOff(note)
	}
	clear(offs)
}
