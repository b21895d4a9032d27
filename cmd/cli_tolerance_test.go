package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCLIArgs_RewritesCommonFlagSyntax(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-week", "101625", "json"})

	assert.Equal(t, []string{"--week", "101625", "--json"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesTypoFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"--weeek", "101625"})

	assert.Equal(t, []string{"--week", "101625"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesAlias(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"--weekcode", "101625", "--cat", "produce"})

	assert.Equal(t, []string{"--week", "101625", "--category", "produce"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesCommandTypo(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"countss", "--week", "101625"})

	assert.Equal(t, []string{"counts", "--week", "101625"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteCompletionPositionalArgs(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"completion", "zsh"})

	assert.Equal(t, []string{"completion", "zsh"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteHelpCommandArgAsFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"help", "stores"})

	assert.Equal(t, []string{"help", "stores"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_RespectsDoubleDashBoundary(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"counts", "--", "week", "101625"})

	assert.Equal(t, []string{"counts", "--", "week", "101625"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_LeavesKnownShorthandUntouched(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-w", "101625", "-n", "5"})

	assert.Equal(t, []string{"-w", "101625", "-n", "5"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_RewritesBareFlagAfterFlagOnlyCommand(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"counts", "week", "101625"})

	assert.Equal(t, []string{"counts", "--week", "101625"}, args)
	assert.NotEmpty(t, notes)
}

func TestExplainCLIError_UnknownFlagIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(errors.New("unknown flag: --weeek"))

	assert.Contains(t, msg, "Try `--week`.")
	assert.Contains(t, msg, "deals4me --week 101625")
	assert.Contains(t, msg, "deals4me --store market_basket --sort price")
}

func TestExplainCLIError_UnknownCommandIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(errors.New("unknown command \"stors\" for \"deals4me\""))

	assert.Contains(t, msg, "Did you mean `stores`?")
	assert.Contains(t, msg, "deals4me counts --week 101625")
	assert.Contains(t, msg, "deals4me items")
}
