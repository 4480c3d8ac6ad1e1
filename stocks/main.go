package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stocks/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when called by the shell to complete a command line.
	cmd.Completion(commander).Complete(name)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		found = found || sub.Name() == name
	})
	return found
}
