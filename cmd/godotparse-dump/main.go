// Command godotparse-dump is a thin illustration of the dotparse
// boundary contract: read bytes, call Parse, print pairs. It is not
// itself part of the parsing library — file I/O, flag parsing, and
// process-environment lookup all live here, outside internal/envparse,
// on purpose.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/envcore/dotparse"
	"github.com/envcore/dotparse/internal/envlog"
)

func main() {
	lookupEnv := flag.Bool("lookup-env", false, "resolve ${NAME} against the process environment when a pair doesn't define it")
	logRecovered := flag.Bool("log-recovered", false, "log malformed/recovered lines to stderr instead of silently dropping them")
	flag.Parse()

	var data []byte
	var err error
	if args := flag.Args(); len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("godotparse-dump: %v", err)
	}

	opts := dotparse.DefaultOptions()
	if *logRecovered {
		opts.OnRecovered = envlog.Hook(logrus.StandardLogger())
	}

	var lookup dotparse.LookupFunc
	if *lookupEnv {
		lookup = func(name string) ([]byte, bool, error) {
			v, ok := os.LookupEnv(name)
			if !ok {
				return nil, false, nil
			}
			return []byte(v), true, nil
		}
	}

	pairs, err := dotparse.ParseWithLookup(data, opts, lookup)
	if err != nil {
		log.Fatalf("godotparse-dump: %v", err)
	}

	for _, p := range pairs {
		fmt.Printf("%s=%s\n", p.Key, p.Value)
	}
}
