package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix prefixes the name of external subcommand binaries.
const ExtensionPrefix = "stocks-"

// RunExtension attempts to find and execute an external stocks-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes the global flags to extensions as environment variables.
// Unset flags are not passed, so that extensions see the user environment.
func extensionEnv() []string {
	var env []string
	if *currencyFlag != "" {
		env = append(env, EnvCurrency+"="+*currencyFlag)
	}
	if *Verbose {
		env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	}
	return env
}
