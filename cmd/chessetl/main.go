package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chessetl/internal/di"
	"chessetl/internal/structures"
)

const usage = `usage: chessetl [flags] <command> [args]

commands:
  fetch [player ...]  download raw monthly archives (configured players by default)
  process             build the canonical dataset CSV from raw archives
  perspective         project the canonical dataset into per-subject rows
  serve               serve the processed datasets over HTTP

flags:
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "log to stderr as well")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if err := run(flags, flag.Arg(0), flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "chessetl: %s\n", err)
		os.Exit(1)
	}
}

func run(flags *structures.CliFlags, command string, args []string) error {
	switch command {
	case "serve":
		_, err := di.InitApp(flags)
		return err

	case "fetch":
		runner, err := di.InitRunner(flags)
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runner.Fetch(ctx, args[1:])

	case "process":
		runner, err := di.InitRunner(flags)
		if err != nil {
			return err
		}
		rows, report, err := runner.Process()
		if err != nil {
			return err
		}
		fmt.Printf("processed %d files: %d records, %d rejected, %d duplicates, %d rows\n",
			report.Files, report.Records, report.Rejected, report.Duplicates, len(rows))
		return nil

	case "perspective":
		runner, err := di.InitRunner(flags)
		if err != nil {
			return err
		}
		n, err := runner.Perspective()
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d perspective rows\n", n)
		return nil

	case "":
		flag.Usage()
		os.Exit(2)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
