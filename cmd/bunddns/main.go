package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	ddns "porkbun-ddns"
)

// Exit codes: 1 means the provider rejected the update,
// anything else that goes wrong exits 2.
const (
	exitUpdateRejected = 1
	exitRunFailed      = 2
)

func main() {
	app := &cli.App{
		Name:  "bunddns",
		Usage: "keep a DNS A record pointed at this machine's public IP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to the config file",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "duplicate log output to this file (truncated each start)",
			},
			&cli.StringFlag{
				Name:  "provider",
				Value: "porkbun",
				Usage: "DNS provider: porkbun or cloudflare",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		// invoking with no subcommand behaves like "run",
		// so a bare bunddns works from cron
		Action: runOnce,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Check the public IP once and update the A record if it changed.",
				Action: runOnce,
			},
			{
				Name:  "daemon",
				Usage: "Keep checking the public IP on an interval.",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Value:   1 * time.Hour,
						Usage:   "duration to wait between IP checks",
					},
				},
				Action: runDaemon,
			},
			{
				Name:   "setup",
				Usage:  "Interactively create the config file.",
				Action: runSetup,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitRunFailed)
	}
}

func runOnce(cctx *cli.Context) error {
	logger, closeLog, err := newLogger(cctx)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cctx, logger)
	if err != nil {
		return err
	}

	if err := client.Run(context.Background()); err != nil {
		logger.Error().Err(err).Msg("run failed")
		if errors.Is(err, ddns.ErrUpdateRejected) {
			return cli.Exit("", exitUpdateRejected)
		}
		return cli.Exit("", exitRunFailed)
	}
	return nil
}

func runDaemon(cctx *cli.Context) error {
	logger, closeLog, err := newLogger(cctx)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(cctx, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := cctx.Duration("interval")
	logger.Info().Dur("interval", interval).Msg("starting daemon")

	// first cycle right away, then on the ticker
	if err := client.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("ddns run failed")
	}
	ddns.RunDaemon(client, ctx, interval, logger)

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	return nil
}

func runSetup(cctx *cli.Context) error {
	path := cctx.String("config")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists; remove it first to run setup again", path)
	}

	stdin := bufio.NewReader(os.Stdin)
	fmt.Print("Domain to manage: ")
	domain, err := stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}
	domain = strings.TrimSpace(domain)
	if !strings.Contains(domain, ".") {
		return errors.New("domain must have at least one dot")
	}

	fmt.Println("Enter API key:")
	key, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}
	fmt.Println("Enter secret API key:")
	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}

	fmt.Print("Healthchecks.io UUID (optional): ")
	uuid, err := stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}

	cfg := &ddns.Config{
		APIKey:           strings.TrimSpace(string(key)),
		SecretAPIKey:     strings.TrimSpace(string(secret)),
		Domain:           domain,
		HealthchecksUUID: strings.TrimSpace(uuid),
	}
	if cfg.APIKey == "" || cfg.SecretAPIKey == "" {
		return errors.New("API key and secret API key cannot be empty")
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("config written to %q\n", path)
	return nil
}

// newLogger builds the run's logging context:
// a console sink on stdout,
// plus an optional file sink opened in overwrite mode.
func newLogger(cctx *cli.Context) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if cctx.Bool("verbose") {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	writer := zerolog.MultiLevelWriter(console)
	closeLog := func() {}
	if path := cctx.String("logfile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(console, f)
		closeLog = func() { f.Close() }
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closeLog, nil
}

func newClient(cctx *cli.Context, logger zerolog.Logger) (ddns.DDNSClient, error) {
	switch provider := cctx.String("provider"); provider {
	case "porkbun":
		return ddns.New(cctx.String("config"),
			ddns.UsingPorkbun(),
			ddns.WithLogger(logger),
		)
	case "cloudflare":
		return ddns.New(cctx.String("config"),
			ddns.UsingCloudflare(),
			ddns.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
