/*
Transpasd starts the transpas HTTP daemon and begins listening for requests.

Usage:

	transpasd [flags]
	transpasd [flags] -l [[ADDRESS]:PORT]

Once started, the daemon serves REST requests at the address given by
--listen (default localhost:8080), exposing a single translation endpoint
under /api/v1.

The flags are:

	-v, --version
		Give the current version of transpas and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. Defaults to the value of environment variable
		TRANSPASD_LISTEN_ADDRESS, and if that is not given, localhost:8080.

	--history DRIVER[:PARAMS]
		Record translation attempts using the given history store. DRIVER
		must be one of: none, inmem, sqlite. sqlite needs the path to a data
		directory, e.g. sqlite:path/to/db_dir. Defaults to the value of
		environment variable TRANSPASD_HISTORY, and if that is not given,
		no history is recorded.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wrenfield/transpas/internal/util"
	"github.com/wrenfield/transpas/internal/version"
	"github.com/wrenfield/transpas/server"
	"github.com/wrenfield/transpas/server/dao"
	"github.com/wrenfield/transpas/server/dao/inmem"
	"github.com/wrenfield/transpas/server/dao/sqlite"
)

const (
	EnvListen  = "TRANSPASD_LISTEN_ADDRESS"
	EnvHistory = "TRANSPASD_HISTORY"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the transpas daemon and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagHistory = pflag.String("history", "", "Record translation attempts using the given history store.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("transpasd (transpas v%s)\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	historyStr := os.Getenv(EnvHistory)
	if pflag.Lookup("history").Changed {
		historyStr = *flagHistory
	}

	db, err := buildHistoryStore(historyStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	srv := server.New(db)
	defer srv.Close()

	if err := srv.ListenAndServe(listenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", err.Error())
		os.Exit(2)
	}
}

// buildHistoryStore parses the --history flag value into a dao.Store. An
// empty string selects no history at all (db == nil).
func buildHistoryStore(historyStr string) (dao.Store, error) {
	if historyStr == "" {
		return nil, nil
	}

	parts := strings.SplitN(historyStr, ":", 2)
	driver := strings.ToLower(parts[0])

	switch driver {
	case "none":
		return nil, nil
	case "inmem":
		return inmem.NewDatastore(), nil
	case "sqlite":
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("sqlite history needs a data directory: sqlite:path/to/dir")
		}
		if err := os.MkdirAll(parts[1], 0770); err != nil {
			return nil, fmt.Errorf("could not build data directory: %w", err)
		}
		return sqlite.NewDatastore(parts[1])
	default:
		valid := util.MakeTextList([]string{"none", "inmem", "sqlite"})
		return nil, fmt.Errorf("unsupported history driver %q, must be one of %s", parts[0], valid)
	}
}
