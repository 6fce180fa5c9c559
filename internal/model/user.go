// Package model defines the user graph data model and the actions that
// advance it.
package model

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// User is a node in the friendship graph.
//
// IDs are positive, unique, and immutable once assigned. Friends holds the
// ids of this user's friends in insertion order, without duplicates. The
// friendship relation is symmetric: the reducer in the store package keeps
// both directions of every edge in agreement.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Friends []int  `json:"friends"`
}

// Clone returns a deep copy of the user.
// The Friends slice is copied so mutations on the clone never alias the original.
func (u User) Clone() User {
	friends := make([]int, len(u.Friends))
	copy(friends, u.Friends)
	return User{ID: u.ID, Name: u.Name, Friends: friends}
}

// CloneUsers returns a deep copy of a user list.
// Used to build snapshots: callers get a state value nothing else can mutate.
func CloneUsers(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

// NormalizeName canonicalizes a user name for comparison and storage:
// surrounding whitespace is trimmed and the text is NFC normalized, so two
// names that render identically compare equal even when their code points
// differ.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// FindByID locates a user by id and returns its position.
//
// The explicit found result is deliberate: position 0 is a valid match, so
// callers must never test a bare index for truthiness.
func FindByID(users []User, id int) (int, bool) {
	for i, u := range users {
		if u.ID == id {
			return i, true
		}
	}
	return 0, false
}

// FindByName locates a user whose normalized name equals the normalized
// needle. Returns the position and an explicit found flag.
func FindByName(users []User, name string) (int, bool) {
	want := NormalizeName(name)
	for i, u := range users {
		if NormalizeName(u.Name) == want {
			return i, true
		}
	}
	return 0, false
}

// MaxID returns the highest id present in the list, or 0 for an empty list.
// New ids are assigned as MaxID+1, which never collides even after gaps.
func MaxID(users []User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}

// ContainsID reports whether id appears in the list of friend ids.
func ContainsID(ids []int, id int) bool {
	return slices.Contains(ids, id)
}
