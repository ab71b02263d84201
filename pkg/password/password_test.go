package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/pkg/password"
)

func TestHashMatches(t *testing.T) {
	h, err := password.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", h)
	assert.True(t, password.Matches(h, "s3cret!"))
	assert.False(t, password.Matches(h, "otra"))
	assert.False(t, password.Matches("", "s3cret!"))
}
