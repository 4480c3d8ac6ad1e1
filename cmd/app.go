// Package cmd implements the CLI application to buy and sell the shares of a
// single security, and report on the lots held and the profit realized.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&interactiveCmd{}, "trading")
	c.Register(&runCmd{}, "trading")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var currencyFlag = flag.String("currency", "", "Currency of the prices. Defaults to $"+EnvCurrency+" or "+DefaultCurrency+".")
var envFile = flag.String("env-file", ".env", "Optional file of environment variables to load at startup")

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "Verbose logging")
