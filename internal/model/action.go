package model

import "fmt"

// ActionKind tags the variant of an Action.
// The model is closed: exactly CreateUser and EditUser exist, and the store
// treats any other kind as a broken caller contract.
type ActionKind string

const (
	// ActionCreateUser appends a new user to the graph.
	ActionCreateUser ActionKind = "create_user"

	// ActionEditUser replaces an existing user's name and friend list.
	ActionEditUser ActionKind = "edit_user"
)

// Action is the tagged value dispatched into the store.
//
// Friends carries the target friend list for the subject user as ground
// truth: the reducer derives the symmetric entries on every other user
// from this list, for creates and edits alike.
type Action struct {
	Kind    ActionKind `json:"kind"`
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Friends []int      `json:"friends"`
}

// CreateUser builds the action committing a newly created user.
// A nil friends list normalizes to an empty one.
func CreateUser(id int, name string, friends []int) Action {
	return Action{
		Kind:    ActionCreateUser,
		ID:      id,
		Name:    name,
		Friends: normalizeFriends(friends),
	}
}

// EditUser builds the action replacing user id's name and friend list.
// A nil friends list normalizes to an empty one.
func EditUser(id int, name string, friends []int) Action {
	return Action{
		Kind:    ActionEditUser,
		ID:      id,
		Name:    name,
		Friends: normalizeFriends(friends),
	}
}

// String renders a short form for logs and panic messages.
func (a Action) String() string {
	return fmt.Sprintf("%s(id=%d, name=%q, friends=%v)", a.Kind, a.ID, a.Name, a.Friends)
}

func normalizeFriends(friends []int) []int {
	if friends == nil {
		return []int{}
	}
	out := make([]int, len(friends))
	copy(out, friends)
	return out
}
