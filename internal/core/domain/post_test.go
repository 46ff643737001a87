package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost_DefaultLifetime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := NewPost("u1", "hi", "general", "", now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(30*24*time.Hour), p.ValidUntil)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Dislikes)
	assert.NotNil(t, p.Comments)
	assert.Empty(t, p.Comments)
}

func TestNewPost_Offset(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := NewPost("u1", "hi", "general", "1m", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), p.ValidUntil)
}

func TestNewPost_Rejects(t *testing.T) {
	now := time.Now()

	cases := map[string][4]string{
		"no author":    {"", "hi", "general", ""},
		"no content":   {"u1", "  ", "general", ""},
		"no topic":     {"u1", "hi", "", ""},
		"bad validity": {"u1", "hi", "general", "tomorrow"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPost(c[0], c[1], c[2], c[3], now)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestPost_ExpiredAtAndInterest(t *testing.T) {
	now := time.Now()
	p := &Post{ValidUntil: now, Likes: 2, Dislikes: 3, AuthorID: "a"}

	assert.False(t, p.ExpiredAt(now), "validUntil == now is still valid")
	assert.True(t, p.ExpiredAt(now.Add(time.Nanosecond)))
	assert.EqualValues(t, 5, p.Interest())
	assert.True(t, p.IsAuthoredBy("a"))
	assert.False(t, p.IsAuthoredBy(""))
}

func TestNewComment(t *testing.T) {
	now := time.Now()

	c, err := NewComment("u1", "p1", "nice", now)
	require.NoError(t, err)
	assert.Equal(t, "p1", c.PostID)

	_, err = NewComment("u1", "", "nice", now)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewComment("u1", "p1", "", now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
