package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"OPEN", "IN_PROGRESS", "DONE"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), s)
	}

	_, err := ParseStatus("open")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}
