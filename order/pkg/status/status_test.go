package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

func TestParse(t *testing.T) {
	for _, s := range All {
		parsed, err := Parse(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.NotEqual(t, string(s), parsed.Label())
	}

	_, err := Parse("lost")
	assert.True(t, errors.Is(err, inErrors.ErrInvalidStatus))
	_, err = Parse("Shipped")
	assert.True(t, errors.Is(err, inErrors.ErrInvalidStatus))
	assert.Equal(t, "lost", Status("lost").Label())
}
