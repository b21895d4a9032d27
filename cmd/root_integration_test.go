package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCLI_CompletionZsh(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"completion", "zsh"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "#compdef deals4me")
	assert.Empty(t, stderr.String())
}

func TestRunCLI_HelpCounts(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"help", "counts"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "deals4me counts [flags]")
	assert.Empty(t, stderr.String())
}

func TestRunCLI_TolerantRewriteWithoutNetworkCall(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"counts", "-week", "101625", "--help"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "deals4me counts [flags]")
	assert.Contains(t, stderr.String(), "interpreted `-week` as `--week`")
}

func TestRunCLI_DoubleDashBoundary(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"counts", "--help", "--", "week", "101625"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "deals4me counts [flags]")
	assert.False(t, strings.Contains(stderr.String(), "interpreted `week` as `--week`"))
}

func TestRunCLI_QuickStartOnEmptyArgs(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI(nil, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "deals4me")
	assert.Empty(t, stderr.String())
}

func TestRunCLI_InvalidSortModeFailsFast(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := runCLI([]string{"--sort", "alphabetical"}, &stdout, &stderr)

	assert.Equal(t, ExitInvalidArgs, code)
	assert.Contains(t, stderr.String(), "invalid value for --sort")
}
