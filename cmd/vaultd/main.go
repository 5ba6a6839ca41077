package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blueshift-gg/ledger/cmd/vaultd/app"
	ledgercmd "github.com/blueshift-gg/ledger/commands"
	"github.com/blueshift-gg/ledger/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

// gitHash is set during the compilation time.
var gitHash = "dev"

// commands are the client side commands. They do not need a home
// directory and only read from input and write to output.
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"derive": cmdDerive,
	"keys":   cmdKeys,
	"query":  cmdQuery,
	"submit": cmdSubmit,
	"tx":     cmdTx,
}

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vaultd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("vaultd")
	fmt.Println("        Vault ledger node")
	fmt.Println("")
	fmt.Println("help     Print this message")
	fmt.Println("init     Initialize app options in genesis file")
	fmt.Println("start    Run the abci server")
	fmt.Println("testgen  Write example encodings to a directory (testdata by default)")
	fmt.Println("validate Check that genesis files can initialize the app")
	fmt.Println("version  Print the app version")
	fmt.Printf("\nClient commands:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.vaultd")`)
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "vaultd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		paths := rest
		if len(paths) == 0 {
			paths = []string{filepath.Join(*varHome, server.GenesisFile)}
		}
		err = server.ValidateGenesis(app.Initializer(), paths)
		if err == nil {
			fmt.Println("genesis is valid")
		}
	case "testgen":
		var examples []ledgercmd.Example
		if examples, err = app.Examples(); err == nil {
			err = ledgercmd.TestGenCmd(examples, rest)
		}
	case "version":
		fmt.Println(gitHash)
	default:
		run, ok := commands[cmd]
		if !ok {
			err = fmt.Errorf("unknown command: %s", cmd)
			break
		}
		err = run(os.Stdin, os.Stdout, rest)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n\n", err)
		os.Exit(1)
	}
}
