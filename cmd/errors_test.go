package cmd

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn and returns everything it wrote to stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()
	require.NoError(t, w.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestLogError_VerboseOnly(t *testing.T) {
	viper.Set("verbose", false)
	defer viper.Set("verbose", false)

	quiet := captureStderr(t, func() {
		LogError("opened task store", nil)
	})
	assert.Empty(t, quiet)

	viper.Set("verbose", true)
	loud := captureStderr(t, func() {
		LogError("opened task store", nil)
		LogError("reload failed", errors.New("boom"))
	})
	assert.Contains(t, loud, "[DEBUG] opened task store")
	assert.Contains(t, loud, "[DEBUG] reload failed: boom")
}

func TestPrintError(t *testing.T) {
	viper.Set("verbose", false)
	defer viper.Set("verbose", false)

	out := captureStderr(t, func() {
		PrintError("something went wrong", errors.New("technical detail"))
	})
	assert.Contains(t, out, "something went wrong")
	assert.NotContains(t, out, "technical detail")

	viper.Set("verbose", true)
	out = captureStderr(t, func() {
		PrintError("something went wrong", errors.New("technical detail"))
	})
	assert.Contains(t, out, "technical detail")
}
