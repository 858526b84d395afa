package main

import (
	_bufio "bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	yaml "gopkg.in/yaml.v3"

	"github.com/Sayan751/email-address-parser/internal/batch"
	"github.com/Sayan751/email-address-parser/internal/bufio"
	"github.com/Sayan751/email-address-parser/internal/corpus"
	"github.com/Sayan751/email-address-parser/internal/logging"
	"github.com/Sayan751/email-address-parser/internal/rfc5322/address"
)

type CLI struct {
	Mode     string     `name:"mode" help:"Grammar to parse addresses with." env:"EMAILADDRESS_MODE" default:"strict" enum:"strict,lax"`
	LogLevel slog.Level `name:"log-level" help:"Log level." env:"EMAILADDRESS_LOG_LEVEL" default:"WARN" enum:"DEBUG,INFO,WARN,ERROR"`
	Workers  int        `name:"workers" help:"Number of addresses checked at the same time. 0 means one per CPU." env:"EMAILADDRESS_WORKERS" default:"0"`
	Format   string     `name:"format" help:"Output format." env:"EMAILADDRESS_FORMAT" default:"text" enum:"text,json,yaml"`
	Null     bool       `name:"null" short:"z" help:"Read NUL-terminated records from standard input instead of lines."`

	Parse    parseCmd    `cmd:"" help:"Split addresses into local-part and domain."`
	Validate validateCmd `cmd:"" help:"Tell whether addresses are valid."`
	Corpus   corpusCmd   `cmd:"" help:"Check a validity corpus file."`
}

type app struct {
	ctx     context.Context
	logger  *slog.Logger
	checker *batch.Checker
	mode    address.Mode
	workers int
	format  string
	null    bool
	stdin   io.Reader
	stdout  io.Writer
}

func (CLI *CLI) initLogger() *slog.Logger {
	return slog.New(logging.NewHandler(os.Stderr, CLI.LogLevel))
}

func (CLI *CLI) newApp(ctx context.Context, logger *slog.Logger, stdin io.Reader, stdout io.Writer) (*app, error) {
	var mode address.Mode
	if err := mode.UnmarshalText([]byte(CLI.Mode)); err != nil {
		return nil, err
	}
	checker, err := batch.NewChecker(
		batch.WithMode(mode),
		batch.WithWorkers(CLI.Workers),
		batch.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &app{
		ctx:     ctx,
		logger:  logger,
		checker: checker,
		mode:    mode,
		workers: checker.Workers(),
		format:  CLI.Format,
		null:    CLI.Null,
		stdin:   stdin,
		stdout:  stdout,
	}, nil
}

// inputs returns args, or the records on standard input when there are none.
func (a *app) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	delim := byte('\n')
	if a.null {
		delim = 0
	}
	records, err := bufio.ReadRecords(&bufio.BufferWrapper{Reader: _bufio.NewReader(a.stdin)}, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to read standard input: %w", err)
	}
	a.logger.Debug("read addresses from standard input", slog.Int("count", len(records)))
	return records, nil
}

func (a *app) check(args []string) ([]batch.Result, error) {
	inputs, err := a.inputs(args)
	if err != nil {
		return nil, err
	}
	return a.checker.CheckAll(a.ctx, inputs)
}

// encode writes v as a JSON line or a YAML document.
func (a *app) encode(v interface{}) error {
	switch a.format {
	case "json":
		return json.NewEncoder(a.stdout).Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", a.format)
}

func countInvalid(results []batch.Result) error {
	n := 0
	for _, r := range results {
		if !r.Valid {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d addresses are invalid", n, len(results))
	}
	return nil
}

type parseCmd struct {
	Addresses []string `arg:"" optional:"" name:"address" help:"Addresses to parse. Read from standard input when omitted."`
}

func (cmd *parseCmd) Run(a *app) error {
	results, err := a.check(cmd.Addresses)
	if err != nil {
		return err
	}
	for _, r := range results {
		if a.format != "text" {
			err = a.encode(r)
		} else if r.Valid {
			_, err = fmt.Fprintf(a.stdout, "%q\t%q\t%q\n", r.Input, r.LocalPart, r.Domain)
		} else {
			_, err = fmt.Fprintf(a.stdout, "%q\tinvalid\n", r.Input)
		}
		if err != nil {
			return err
		}
	}
	return countInvalid(results)
}

type validateCmd struct {
	Addresses []string `arg:"" optional:"" name:"address" help:"Addresses to validate. Read from standard input when omitted."`
	Quiet     bool     `name:"quiet" short:"q" help:"Print nothing; only set the exit status."`
}

func (cmd *validateCmd) Run(a *app) error {
	results, err := a.check(cmd.Addresses)
	if err != nil {
		return err
	}
	if !cmd.Quiet {
		for _, r := range results {
			if a.format != "text" {
				err = a.encode(r)
			} else {
				verdict := "invalid"
				if r.Valid {
					verdict = "valid"
				}
				_, err = fmt.Fprintf(a.stdout, "%q\t%s\n", r.Input, verdict)
			}
			if err != nil {
				return err
			}
		}
	}
	return countInvalid(results)
}

type corpusCmd struct {
	File string `arg:"" name:"file" type:"existingfile" help:"Corpus file to check."`
}

func (cmd *corpusCmd) Run(a *app) error {
	c, err := corpus.LoadFile(cmd.File)
	if err != nil {
		return err
	}
	cases := c.Cases()
	mismatches, err := corpus.Run(
		a.ctx,
		cases,
		batch.WithWorkers(a.workers),
		batch.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.logger.Info(
		"checked corpus",
		slog.String("path", cmd.File),
		slog.Int("cases", len(cases)),
		slog.Int("mismatches", len(mismatches)),
	)
	for _, m := range mismatches {
		if a.format != "text" {
			err = a.encode(m)
		} else {
			_, err = fmt.Fprintln(a.stdout, m.String())
		}
		if err != nil {
			return err
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d of %d corpus cases mismatched", len(mismatches), len(cases))
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	var CLI CLI
	kongCtx := kong.Parse(
		&CLI,
		kong.Name("emailaddress"),
		kong.Description("Parse and validate RFC 5322 email addresses."),
		kong.UsageOnError(),
	)
	logger := CLI.initLogger()
	a, err := CLI.newApp(ctx, logger, os.Stdin, os.Stdout)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
	err = kongCtx.Run(a)
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
}
