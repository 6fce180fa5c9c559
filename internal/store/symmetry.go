package store

import (
	"fmt"

	"github.com/dannycalleri/usergraph/internal/model"
)

// CheckSymmetry verifies the graph invariants over a state value:
// every friend id references an existing user, no friend list contains
// duplicates or a self reference, and every edge is mirrored (v in u's
// friends exactly when u in v's).
//
// Returns nil for a consistent state, or an error naming the first
// violation. Used by harness assertions and invariant tests.
func CheckSymmetry(state []model.User) error {
	for _, u := range state {
		seen := make(map[int]bool, len(u.Friends))
		for _, fid := range u.Friends {
			if fid == u.ID {
				return fmt.Errorf("user %d lists itself as a friend", u.ID)
			}
			if seen[fid] {
				return fmt.Errorf("user %d lists friend %d twice", u.ID, fid)
			}
			seen[fid] = true

			idx, found := model.FindByID(state, fid)
			if !found {
				return fmt.Errorf("user %d lists missing user %d as a friend", u.ID, fid)
			}
			if !model.ContainsID(state[idx].Friends, u.ID) {
				return fmt.Errorf("asymmetric edge: user %d lists %d but not vice versa", u.ID, fid)
			}
		}
	}
	return nil
}
