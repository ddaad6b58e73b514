package domain

import "fmt"

// SentinelNone marks "no actor pending" in cursors and the head of an
// approval sequence that requires no approval at all.
const SentinelNone int64 = 0

// Sequence is an ordered list of workflow actor ids (approver ids or
// treatment ids), consumed front to back. Stored as a BIGINT[] column and
// immutable once set on a ticket.
type Sequence []int64

// Validate rejects malformed stored sequences. Negative ids are never valid,
// and the zero sentinel is only meaningful as the sole element of an approval
// sequence.
func (s Sequence) Validate() error {
	for i, id := range s {
		if id < 0 {
			return fmt.Errorf("sequence position %d: negative id %d", i, id)
		}
		if id == SentinelNone && len(s) > 1 {
			return fmt.Errorf("sequence position %d: zero sentinel in multi-entry sequence", i)
		}
	}
	return nil
}

// First returns the head of the sequence, or the sentinel when empty.
func (s Sequence) First() int64 {
	if len(s) == 0 {
		return SentinelNone
	}
	return s[0]
}

// Contains reports membership of a real (non-sentinel) actor id.
func (s Sequence) Contains(id int64) bool {
	if id == SentinelNone {
		return false
	}
	for _, candidate := range s {
		if candidate == id {
			return true
		}
	}
	return false
}

// After returns the id that follows the given member, or the sentinel when the
// member is the last entry. The second return is false when id is not a member.
func (s Sequence) After(id int64) (int64, bool) {
	for i, candidate := range s {
		if candidate != id {
			continue
		}
		if i+1 < len(s) {
			return s[i+1], true
		}
		return SentinelNone, true
	}
	return SentinelNone, false
}

// Clone returns an independent copy so ticket rows never alias catalog rows.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
