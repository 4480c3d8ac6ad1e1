package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands and flags of c for shell completion.
//
// Commands that read files complete their arguments with file names.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cmd := &complete.Command{Flags: flagPredictors(fs)}
		if _, ok := sub.(*runCmd); ok {
			cmd.Args = predict.Files("*")
		}
		root.Sub[sub.Name()] = cmd
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch f.Name {
		case "currency":
			flags[f.Name] = predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"}
		case "env-file":
			flags[f.Name] = predict.Files("*")
		default:
			flags[f.Name] = predict.Nothing
		}
	})
	return flags
}
