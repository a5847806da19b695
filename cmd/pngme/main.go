package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pngme.adpollak.net/internal/commands"
	"pngme.adpollak.net/internal/config"
)

const usage = `usage: pngme [-config file] <command> [args]

commands:
  encode [-out file] <png> <chunk type> <message>   hide a message in a new chunk
  decode <png> <chunk type>                         print the message of a chunk
  remove <png> <chunk type>                         remove the first chunk of a type
  print <png>                                       list the chunks of a file
`

type errUsage struct{ msg string }

func (e errUsage) Error() string { return e.msg }

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.toml", "config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "filename", configPath)
		os.Exit(1)
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		slog.Error("failed to open log file", "error", err, "filename", cfg.LogFile)
		os.Exit(1)
	}
	defer closeLog()

	r := commands.NewRunner(logger, cfg.Mode())
	if err := run(r, flag.Args(), os.Stdout); err != nil {
		if u, ok := err.(errUsage); ok {
			fmt.Fprintf(os.Stderr, "%s\n\n%s", u.msg, usage)
			closeLog()
			os.Exit(2)
		}
		logger.Error("command failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeLog = func() { f.Close() }
	}
	logLevel := new(slog.LevelVar)
	logLevel.Set(level)
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel})), closeLog, nil
}

func run(r *commands.Runner, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage{"missing command"}
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "encode":
		fs := flag.NewFlagSet("encode", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		out := fs.String("out", "", "write the result here instead of over the input")
		if err := fs.Parse(args); err != nil {
			return errUsage{fmt.Sprintf("encode: %v", err)}
		}
		if fs.NArg() != 3 {
			return errUsage{"encode takes <png> <chunk type> <message>"}
		}
		return r.Encode(fs.Arg(0), fs.Arg(1), fs.Arg(2), *out)
	case "decode":
		if len(args) != 2 {
			return errUsage{"decode takes <png> <chunk type>"}
		}
		msg, err := r.Decode(args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, msg)
		return err
	case "remove":
		if len(args) != 2 {
			return errUsage{"remove takes <png> <chunk type>"}
		}
		c, err := r.Remove(args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "removed %s (%d bytes)\n", c.Type(), c.Length())
		return err
	case "print":
		if len(args) != 1 {
			return errUsage{"print takes <png>"}
		}
		return r.Print(args[0], stdout)
	}
	return errUsage{fmt.Sprintf("unknown command %q", cmd)}
}
