/*
Transpasi translates a Pascal-like source program into its C#-like
equivalent.

It reads a program either from a file argument or, in interactive mode, from
a line-buffered session on stdin terminated by a line containing only ".".
The translated program is written to stdout, or to the file named by -o
when it is given.

Usage:

	transpasi [flags] [INPUT_FILE]

The flags are:

	-v, --version
		Give the current version of transpas and then exit.

	-o, --output FILE
		Write the translated program to FILE instead of stdout.

	-i, --interactive
		Read the source program from an interactive readline session on
		stdin instead of from a file. Entry ends on a line containing only
		the character ".".
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/wrenfield/transpas"
	"github.com/wrenfield/transpas/internal/version"
)

const (
	// ExitSuccess indicates a successful run.
	ExitSuccess = iota

	// ExitTranslateError indicates the source program failed to lex,
	// parse, or type-check.
	ExitTranslateError

	// ExitInitError indicates an issue reading input or preparing output.
	ExitInitError
)

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	flagOutput   = pflag.StringP("output", "o", "", "Write the translated program to this file instead of stdout")
	flagInteract = pflag.BoolP("interactive", "i", false, "Read the source program from an interactive readline session")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()

	source, err := readSource(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	target, err := transpas.Transpile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitTranslateError
		return
	}

	if err := writeTarget(target); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
}

func readSource(args []string) (string, error) {
	if *flagInteract || len(args) == 0 {
		return readInteractive()
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", args[0], err)
	}
	return string(data), nil
}

// readInteractive reads lines from a readline session until a line
// containing only "." ends entry.
func readInteractive() (string, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "pas> "})
	if err != nil {
		return "", fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				break
			}
			return "", err
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

func writeTarget(target string) error {
	if *flagOutput != "" {
		return os.WriteFile(*flagOutput, []byte(target), 0644)
	}
	fmt.Print(target)
	return nil
}
