// Package lockstep buffers each multiplayer participant's per-frame command
// bundle and releases a merged, ordered bundle once every participant has
// submitted (spec §4.10).
//
// Grounded on the teacher's sidecar.Step/NotifyStepReady contract
// (task/simulet.go's Run loop: prepare, NotifyStepReady, update, Step) —
// the private syncer.Sidecar this wraps talks gRPC to an external syncer
// process, which is out of scope (spec §1 "the network transport ... wire
// framing is not [in scope]"); this package keeps the contract (buffer,
// barrier, merge-in-order) but exposes it as a plain in-process type a
// transport layer can sit on top of, rather than baking in gRPC.
package lockstep

import (
	"fmt"
	"sort"
	"sync"

	"github.com/citysim/engine/command"
)

// ParticipantID identifies one process in the lockstep group (spec §4.10
// "merges bundles in participant-ID order").
type ParticipantID int

// Harness buffers frame N's bundles until every participant has submitted,
// then hands back a merged, participant-ID-ordered command list.
type Harness struct {
	mu           sync.Mutex
	participants int

	pending map[uint64]map[ParticipantID][]command.WorldCommand

	divergedAt  *uint64
	frameHashes map[uint64]map[ParticipantID]uint64
}

// New returns a Harness expecting exactly n participants per frame.
func New(n int) *Harness {
	return &Harness{
		participants: n,
		pending:      make(map[uint64]map[ParticipantID][]command.WorldCommand),
		frameHashes:  make(map[uint64]map[ParticipantID]uint64),
	}
}

// Submit records participant p's bundle for frame. Once every participant
// has submitted for that frame, ready is true and merged holds every
// participant's commands concatenated in ascending participant-ID order
// (spec §4.10); the frame's buffer is then freed. Calling Submit twice for
// the same (frame, participant) overwrites the earlier bundle — the caller
// is expected to submit each frame exactly once.
func (h *Harness) Submit(frame uint64, p ParticipantID, cmds []command.WorldCommand) (merged []command.WorldCommand, ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bundle, ok := h.pending[frame]
	if !ok {
		bundle = make(map[ParticipantID][]command.WorldCommand, h.participants)
		h.pending[frame] = bundle
	}
	bundle[p] = cmds

	if len(bundle) < h.participants {
		return nil, false
	}

	ids := make([]ParticipantID, 0, len(bundle))
	for id := range bundle {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		merged = append(merged, bundle[id]...)
	}
	delete(h.pending, frame)
	return merged, true
}

// Pending reports how many participants have submitted frame's bundle so
// far, for diagnostics (e.g. a stalled frame waiting on one straggler).
func (h *Harness) Pending(frame uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending[frame])
}

// ReportHash records participant p's per-frame hash (spec §8 property 1's
// sync audit) for frame. Once a second participant reports a different hash
// for the same frame, Err reports the earliest such frame from then on.
func (h *Harness) ReportHash(frame uint64, p ParticipantID, hash uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	byParticipant, ok := h.frameHashes[frame]
	if !ok {
		byParticipant = make(map[ParticipantID]uint64, h.participants)
		h.frameHashes[frame] = byParticipant
	}
	byParticipant[p] = hash

	diverged := false
	var want uint64
	first := true
	for _, got := range byParticipant {
		if first {
			want = got
			first = false
			continue
		}
		if got != want {
			diverged = true
			break
		}
	}
	if diverged && (h.divergedAt == nil || frame < *h.divergedAt) {
		f := frame
		h.divergedAt = &f
	}
}

// Err returns a non-nil error naming the earliest frame at which reported
// hashes diverged across participants (spec §4.10 "raises an error with the
// earliest divergent frame"), or nil if no divergence has been observed.
func (h *Harness) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.divergedAt == nil {
		return nil
	}
	return fmt.Errorf("lockstep: diverged at frame %d", *h.divergedAt)
}
