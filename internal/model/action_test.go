package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser_NilFriendsBecomesEmpty(t *testing.T) {
	a := CreateUser(1, "A", nil)

	assert.Equal(t, ActionCreateUser, a.Kind)
	assert.NotNil(t, a.Friends)
	assert.Empty(t, a.Friends)
}

func TestEditUser_CopiesFriendsList(t *testing.T) {
	friends := []int{1, 2}
	a := EditUser(3, "C", friends)

	friends[0] = 99

	assert.Equal(t, []int{1, 2}, a.Friends, "action must not alias the caller's slice")
	assert.Equal(t, ActionEditUser, a.Kind)
	assert.Equal(t, 3, a.ID)
}

func TestAction_String(t *testing.T) {
	a := CreateUser(1, "A", []int{2})
	assert.Equal(t, `create_user(id=1, name="A", friends=[2])`, a.String())
}
