package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_SetLevelSharedWithChildren(t *testing.T) {
	l := New(LevelInfo)
	child := l.With(String("component", "test"))

	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, l.GetLevel())
	assert.Equal(t, LevelError, child.GetLevel())
}

func TestNop_DiscardsAllFields(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info("message",
			String("s", "v"),
			Int("i", 1),
			Float32("f", 1.5),
			Uint64("u", 2),
			Error(errors.New("boom")),
			Error(nil),
			Any("any", struct{}{}),
		)
	})
}
