package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("u1"))
	assert.NoError(t, ValidateUserID(strings.Repeat("x", 64)))

	assert.ErrorIs(t, ValidateUserID(""), ErrUserIDRequired)
	assert.ErrorIs(t, ValidateUserID("   "), ErrUserIDRequired)
	assert.ErrorIs(t, ValidateUserID(strings.Repeat("x", 65)), ErrUserIDTooLong)
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("I drive everywhere"))
	assert.NoError(t, ValidateMessage(strings.Repeat("a", 2000)))

	assert.ErrorIs(t, ValidateMessage(""), ErrMessageRequired)
	assert.ErrorIs(t, ValidateMessage("  \n "), ErrMessageRequired)
	assert.ErrorIs(t, ValidateMessage(strings.Repeat("a", 2001)), ErrMessageTooLong)
}
