package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Expiry(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"", "5m", "12h", "30d"} {
		assert.NoError(t, v.Validate(&createPostRequest{Content: "c", Topic: "t", ValidUntil: ok}), ok)
	}
	for _, bad := range []string{"5", "m", "5s", "-1d", "1.5h", "9999999h", "153722868m"} {
		err := v.Validate(&createPostRequest{Content: "c", Topic: "t", ValidUntil: bad})
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), `"validUntil"`)
	}
}

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&loginRequest{UserName: "alice"})
	require.Error(t, err)
	assert.Equal(t, `"password" is required`, err.Error())

	err = v.Validate(&profileRequest{UserName: "alice", Email: "not-an-email", Password: "secret1", FullName: "Alice"})
	require.Error(t, err)
	assert.Equal(t, `"email" must be a valid email`, err.Error())

	err = v.Validate(&profileRequest{UserName: "alice", Email: "a@b.co", Password: "12345", FullName: "Alice"})
	require.Error(t, err)
	assert.Equal(t, `"password" length must be at least 6 characters long`, err.Error())
}
