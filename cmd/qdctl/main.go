// Command qdctl is the quotedeck control CLI: deep-link actions against
// the shared store, usable while the reader is closed.
//
// Usage:
//
//	qdctl                   Show help
//	qdctl open <quote-id>   Queue a quote to open on next reader launch
//	qdctl copy [quote-id]   Print a quote's text and attribution
//	qdctl fav [quote-id]    Toggle favorite on a quote
//	qdctl advance           Advance the widget rotation
//	qdctl stats             Library and preference statistics
//	qdctl queues            List saved queues
package main

import (
	"fmt"
	"os"
)

const usage = `qdctl — quotedeck control CLI

Usage:
  qdctl <command> [args]

Commands:
  open <quote-id>   Queue a quote to open on next reader launch
  copy [quote-id]   Print a quote's text and attribution (defaults to the widget's quote)
  fav [quote-id]    Toggle favorite on a quote (defaults to the widget's quote)
  advance           Advance the widget rotation
  stats             Library and preference statistics
  queues            List saved queues
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "open":
		err = runOpen(args)
	case "copy":
		err = runCopy(args)
	case "fav":
		err = runFav(args)
	case "advance":
		err = runAdvance()
	case "stats":
		err = runStats()
	case "queues":
		err = runQueues()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "qdctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "qdctl: %v\n", err)
		os.Exit(1)
	}
}
