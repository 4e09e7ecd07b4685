// searchserver ranks a small corpus read from stdin against one query.
//
// The first input line holds the stop words, the second the number of
// documents, followed by one document per line and finally the query.
// Results go to stdout, logs to stderr.
//
//	$ printf 'и в на\n3\nбелый кот и модный ошейник\nпушистый кот пушистый хвост\nухоженный пёс выразительные глаза\nпушистый ухоженный кот\n' | searchserver
//	{ document_id = 1, relevance = 0.650672 }
//	{ document_id = 2, relevance = 0.274653 }
//	{ document_id = 0, relevance = 0.101366 }
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wizenheimer/searchserver"
	"github.com/wizenheimer/searchserver/internal/cli"
	"github.com/wizenheimer/searchserver/internal/config"
	"github.com/wizenheimer/searchserver/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string
	var logLevel string
	var logFormat string

	flagSet := pflag.NewFlagSet("searchserver", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flagSet.StringVar(&logFormat, "log-format", "", "log format: text or json (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	return cli.Run(os.Stdin, os.Stdout, cfg.Output.Precision)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "usage: searchserver [flags] < input\n\n")
	fmt.Fprintf(os.Stderr, "Reads stop words, a document count, the documents and a query from stdin,\n")
	fmt.Fprintf(os.Stderr, "then prints the top %d documents by TF-IDF relevance.\n\n", searchserver.MaxResultDocumentCount)
	flagSet.PrintDefaults()
}
