package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrings(t *testing.T) {
	alice := User{Username: "alice", FirstName: "Alice", LastName: "Liddell"}
	bob := User{Username: "bob"}

	assert.Equal(t, "Alice Liddell", alice.DisplayName())
	assert.Equal(t, "bob", bob.DisplayName())
	assert.Equal(t, "alice", alice.String())

	assert.Equal(t, "Cats", (&Group{Title: "Cats"}).String())
	assert.Equal(t, "Hello world", (&Post{Text: "Hello world"}).String())

	c := &Comment{Author: bob, Text: "Привет, это длинный комментарий"}
	assert.Equal(t, `bob: "Привет, это дли..."`, c.String())

	f := &Follow{User: alice, Following: bob}
	assert.Equal(t, "Alice Liddell подписан на bob", f.String())
}
