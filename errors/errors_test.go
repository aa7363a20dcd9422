package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
}

func TestIsWithStdlibError(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	wrapped := Wrapf(sentinel, "while doing %s", "work")

	assert.True(t, Is(wrapped, sentinel))
	assert.False(t, Is(wrapped, New("other")))
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(New("pipe broke"), "restart the session")
	err = Wrap(err, "send failed")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "restart the session", hints[0])
}
