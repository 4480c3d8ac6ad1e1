package cmd

import (
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("stocks", flag.ContinueOnError), "stocks")
	Register(commander)

	c := Completion(commander)
	require.Contains(t, c.Sub, "interactive")
	require.Contains(t, c.Sub, "run")

	assert.Contains(t, c.Sub["interactive"].Flags, "q")
	assert.Nil(t, c.Sub["interactive"].Args)
	for _, name := range []string{"json", "md", "strict"} {
		assert.Contains(t, c.Sub["run"].Flags, name)
	}
	assert.NotNil(t, c.Sub["run"].Args, "run completes file names")

	// global flags come from the command line flag set.
	assert.Contains(t, c.Flags, "currency")
	assert.Contains(t, c.Flags, "v")
}
