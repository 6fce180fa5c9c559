package store

import (
	"fmt"

	"github.com/dannycalleri/usergraph/internal/model"
)

// Apply advances the user graph by one action and returns the new state.
//
// The input state is never mutated; the result is a deep copy with the
// transition applied. Contract violations are panics, not errors: an unknown
// action kind, an edit targeting a missing id, or a friend reference to a
// nonexistent user all indicate a broken caller, since ids only ever
// originate from previously committed creates.
func Apply(state []model.User, action model.Action) []model.User {
	switch action.Kind {
	case model.ActionCreateUser:
		return applyCreate(state, action)
	case model.ActionEditUser:
		return applyEdit(state, action)
	default:
		panic(fmt.Sprintf("store: unknown action kind %q in %s", action.Kind, action))
	}
}

// applyCreate appends the new user, then mirrors the edge onto every listed
// friend. Append order is creation order; users not referenced by the action
// keep their position and content.
func applyCreate(state []model.User, action model.Action) []model.User {
	next := model.CloneUsers(state)

	friends := make([]int, len(action.Friends))
	copy(friends, action.Friends)
	next = append(next, model.User{ID: action.ID, Name: action.Name, Friends: friends})

	for _, fid := range action.Friends {
		idx, found := model.FindByID(next, fid)
		if !found {
			panic(fmt.Sprintf("store: %s references missing user %d", action, fid))
		}
		next[idx].Friends = appendOnce(next[idx].Friends, action.ID)
	}

	return next
}

// applyEdit replaces the target user's name and friend list in place, then
// re-derives every symmetric edge touching the edited node in a single pass:
// each other user gains the edited id if it now lists them, and loses it if
// it no longer does.
func applyEdit(state []model.User, action model.Action) []model.User {
	next := model.CloneUsers(state)

	idx, found := model.FindByID(next, action.ID)
	if !found {
		panic(fmt.Sprintf("store: %s targets a user that does not exist", action))
	}

	friends := make([]int, len(action.Friends))
	copy(friends, action.Friends)
	for _, fid := range friends {
		if _, ok := model.FindByID(next, fid); !ok {
			panic(fmt.Sprintf("store: %s references missing user %d", action, fid))
		}
	}
	next[idx].Name = action.Name
	next[idx].Friends = friends

	for i := range next {
		if i == idx {
			continue
		}
		if model.ContainsID(friends, next[i].ID) {
			next[i].Friends = appendOnce(next[i].Friends, action.ID)
		} else {
			next[i].Friends = removeID(next[i].Friends, action.ID)
		}
	}

	return next
}

// appendOnce appends id unless it is already present.
func appendOnce(ids []int, id int) []int {
	if model.ContainsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// removeID deletes the first occurrence of id, preserving order.
//
// The explicit found flag matters: a match at position 0 is still a match,
// which a truthiness check on the index would silently skip.
func removeID(ids []int, id int) []int {
	pos, found := indexOf(ids, id)
	if !found {
		return ids
	}
	return append(ids[:pos], ids[pos+1:]...)
}

func indexOf(ids []int, id int) (int, bool) {
	for i, v := range ids {
		if v == id {
			return i, true
		}
	}
	return 0, false
}
