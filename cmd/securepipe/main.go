// securepipe issues and reads SecurePipe tokens from the command line.
//
// The secret and identity come from SECUREPIPE_* environment variables,
// optionally loaded from a .env file. Payloads are read as YAML (JSON is a
// subset) and decrypted payloads are printed as YAML.
package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/securepipe"
	"github.com/dmitrymomot/securepipe/pkg/logger"
	"github.com/dmitrymomot/securepipe/pkg/secrets"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name  string
	usage string
	run   func(c *cli, args []string) error
}

var commands = []command{
	{"keygen", "print a random secret suitable for SECUREPIPE_SECRET", (*cli).keygen},
	{"encrypt", "read a payload from stdin and print a token", (*cli).encrypt},
	{"decrypt", "print the payload of a token", (*cli).decrypt},
	{"inspect", "print the public metadata of a token", (*cli).inspect},
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return errors.New("missing command")
		}
		return nil
	}

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(c, args[1:])
		}
	}

	printUsage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:\n  securepipe <command> [flags]\n\nCommands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(w, "\nRun 'securepipe <command> --help' for command flags.")
}

// newFlagSet returns a flag set carrying the flags shared by every command.
func (c *cli) newFlagSet(name string) (*pflag.FlagSet, *string, *bool) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(c.stderr)
	envFile := flagSet.String("env-file", "", "load configuration from this file instead of ./.env")
	verbose := flagSet.BoolP("verbose", "v", false, "log diagnostics to stderr")
	return flagSet, envFile, verbose
}

func (c *cli) setupLogger(verbose bool) {
	opts := []logger.Option{logger.WithOutput(c.stderr), logger.WithTextFormatter(), logger.WithLevel(slog.LevelWarn)}
	if verbose {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	c.log = logger.New(opts...)
}

func (c *cli) pipe(envFile string) (*securepipe.SecurePipe, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := securepipe.LoadConfig(files...)
	if err != nil {
		return nil, err
	}
	return securepipe.NewFromConfig(cfg, securepipe.WithLogger(c.log))
}

// tokenArg takes the token from the single positional argument or stdin.
func (c *cli) tokenArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(io.LimitReader(c.stdin, 2*int64(token.MaxTokenLength)))
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case 1:
		return strings.TrimSpace(args[0]), nil
	default:
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
}

func (c *cli) keygen(args []string) error {
	flagSet, _, _ := c.newFlagSet("keygen")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	key, err := secrets.GenerateKey()
	if err != nil {
		return err
	}
	defer secrets.Wipe(key)

	fmt.Fprintln(c.stdout, base64.RawURLEncoding.EncodeToString(key))
	return nil
}

func (c *cli) encrypt(args []string) error {
	flagSet, envFile, verbose := c.newFlagSet("encrypt")
	expiresIn := flagSet.Duration("expires-in", 0, "token lifetime, e.g. 15m (default: never expires)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	c.setupLogger(*verbose)

	pipe, err := c.pipe(*envFile)
	if err != nil {
		return err
	}

	var v any
	dec := yaml.NewDecoder(c.stdin)
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	var opts []securepipe.EncryptOption
	if *expiresIn != 0 {
		opts = append(opts, securepipe.ExpiresIn(*expiresIn))
	}

	start := time.Now()
	tok, err := pipe.Encrypt(v, opts...)
	if err != nil {
		return err
	}
	c.log.Debug("token issued",
		logger.Mode(string(pipe.Mode())),
		logger.Duration(time.Since(start)),
	)

	fmt.Fprintln(c.stdout, tok)
	return nil
}

func (c *cli) decrypt(args []string) error {
	flagSet, envFile, verbose := c.newFlagSet("decrypt")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	c.setupLogger(*verbose)

	tok, err := c.tokenArg(flagSet.Args())
	if err != nil {
		return err
	}

	pipe, err := c.pipe(*envFile)
	if err != nil {
		return err
	}

	start := time.Now()
	v, err := pipe.Decrypt(tok)
	if err != nil {
		return err
	}
	c.log.Debug("token decrypted", logger.Duration(time.Since(start)))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	_, err = c.stdout.Write(buf.Bytes())
	return err
}

// tokenMetadata is the printed form of securepipe.TokenInfo.
type tokenMetadata struct {
	Version   string `yaml:"version"`
	Salt      string `yaml:"salt"`
	Identity  string `yaml:"identity"`
	Mode      string `yaml:"mode"`
	IssuedAt  string `yaml:"issued_at"`
	ExpiresAt string `yaml:"expires_at,omitempty"`
}

func (c *cli) inspect(args []string) error {
	flagSet, _, verbose := c.newFlagSet("inspect")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	c.setupLogger(*verbose)

	tok, err := c.tokenArg(flagSet.Args())
	if err != nil {
		return err
	}

	info, err := securepipe.Inspect(tok)
	if err != nil {
		return err
	}
	c.log.Debug("token inspected", logger.Identity(info.Identity), logger.TokenVersion(info.Version))

	meta := tokenMetadata{
		Version:  info.Version.String(),
		Salt:     base64.RawURLEncoding.EncodeToString(info.Salt),
		Identity: info.Identity.String(),
		Mode:     string(info.Mode),
		IssuedAt: info.IssuedAt.UTC().Format(time.RFC3339),
	}
	if info.ExpiresAt != nil {
		meta.ExpiresAt = info.ExpiresAt.UTC().Format(time.RFC3339)
	}

	out, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(out)
	return err
}
