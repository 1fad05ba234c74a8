package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/five82/axedeck/internal/app"
	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/config"
	"github.com/five82/axedeck/internal/logging"
	"github.com/five82/axedeck/internal/registry"
)

const usage = `Usage:
  axedeck [flags]                    open the dashboard
  axedeck [flags] info <miner>       print the miner's telemetry document
  axedeck [flags] restart <miner>    restart the miner
  axedeck [flags] set <miner> [settings flags]
  axedeck [flags] miners             list saved miners
  axedeck [flags] rename <miner> <name>

<miner> is a saved miner's id or name, or an IP address / hostname.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("axedeck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	configPath := fs.String("config", "", "override config path (optional)")
	prefsPath := fs.String("prefs", "", "override preferences path (optional)")
	pollSeconds := fs.Int("poll", 0, "poll interval in seconds (optional, defaults to 5s)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rest := fs.Args()
	if len(rest) == 0 {
		if !isTerminal(os.Stdout) {
			fmt.Fprintln(stderr, "axedeck: the dashboard needs an interactive terminal (see axedeck --help for one-shot commands)")
			return 1
		}
		opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
		if poll := *pollSeconds; poll > 0 {
			opts.PollEvery = poll
		}
		if err := app.Run(ctx, opts); err != nil {
			fmt.Fprintf(stderr, "axedeck: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "axedeck: load config: %v\n", err)
		return 1
	}
	logger := logging.NewStderr(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	cli := &cli{
		cfg:    cfg,
		logger: logger,
		client: axeos.NewClient(axeos.WithLogger(logger), axeos.WithUserAgent(cfg.UserAgent)),
		stdout: stdout,
		stderr: stderr,
	}

	command, cmdArgs := rest[0], rest[1:]
	switch command {
	case "info":
		err = cli.info(ctx, cmdArgs)
	case "restart":
		err = cli.restart(ctx, cmdArgs)
	case "set":
		err = cli.set(ctx, cmdArgs)
	case "miners":
		err = cli.miners()
	case "rename":
		err = cli.rename(cmdArgs)
	default:
		fmt.Fprintf(stderr, "axedeck: unknown command %q\n", command)
		fs.Usage()
		return 2
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "axedeck: %v\n", err)
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type cli struct {
	cfg    config.Config
	logger *zap.Logger
	client *axeos.Client
	stdout io.Writer
	stderr io.Writer
}

// resolve maps a command argument to a miner address. Saved ids and names
// win over raw addresses so "garage" works as well as "10.0.0.5".
func (c *cli) resolve(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected exactly one miner name or address")
	}
	arg := args[0]
	if reg, err := registry.Open(c.cfg.MinersFile); err == nil {
		if miner, ok := findSaved(reg, arg); ok {
			return miner.Address, nil
		}
	} else {
		c.logger.Debug("saved miners unavailable", zap.Error(err))
	}
	return registry.NormalizeAddress(arg)
}

func findSaved(reg *registry.Registry, arg string) (registry.Miner, bool) {
	arg = strings.TrimSpace(arg)
	if miner, ok := reg.Find(arg); ok {
		return miner, true
	}
	for _, miner := range reg.List() {
		if strings.EqualFold(miner.Name, arg) {
			return miner, true
		}
	}
	return reg.FindByAddress(arg)
}

func (c *cli) info(ctx context.Context, args []string) error {
	address, err := c.resolve(args)
	if err != nil {
		return err
	}
	telemetry, err := c.client.FetchTelemetry(ctx, address)
	if err != nil {
		return err
	}
	c.logger.Info("telemetry received", zap.String("address", address), zap.String("endpoint", telemetry.Endpoint))

	var out bytes.Buffer
	if err := json.Indent(&out, telemetry.Document, "", "  "); err != nil {
		out.Reset()
		out.Write(telemetry.Document)
	}
	out.WriteByte('\n')
	_, err = c.stdout.Write(out.Bytes())
	return err
}

func (c *cli) restart(ctx context.Context, args []string) error {
	address, err := c.resolve(args)
	if err != nil {
		return err
	}
	result, err := c.client.Restart(ctx, address)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s to %s (HTTP %d)\n", result.Message, address, result.StatusCode)
	return nil
}

func (c *cli) set(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("set", pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	url := fs.String("url", "", "stratum pool host")
	port := fs.Uint16("port", 0, "stratum pool port")
	user := fs.String("user", "", "stratum user (usually wallet.worker)")
	pass := fs.String("pass", "", "stratum password")
	fan := fs.Uint8("fan", 0, "fan speed percent (0-100)")
	freq := fs.Uint16("freq", 0, "ASIC frequency in MHz")
	voltage := fs.Uint16("voltage", 0, "core voltage in mV")
	fs.Usage = func() {
		fmt.Fprintln(c.stderr, "Usage: axedeck set <miner> [flags]\n\nOnly the flags given are sent.\n\nFlags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var patch axeos.SettingsPatch
	if fs.Changed("url") {
		patch = patch.WithStratumURL(*url)
	}
	if fs.Changed("port") {
		if *port == 0 {
			return errors.New("--port must be 1-65535")
		}
		patch = patch.WithStratumPort(*port)
	}
	if fs.Changed("user") {
		patch = patch.WithStratumUser(*user)
	}
	if fs.Changed("pass") {
		patch = patch.WithStratumPassword(*pass)
	}
	if fs.Changed("fan") {
		patch = patch.WithFanSpeed(*fan)
	}
	if fs.Changed("freq") {
		patch = patch.WithFrequency(*freq)
	}
	if fs.Changed("voltage") {
		patch = patch.WithCoreVoltage(*voltage)
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if patch.IsEmpty() {
		c.logger.Warn("no settings flags given; sending an empty patch")
	}

	address, err := c.resolve(fs.Args())
	if err != nil {
		return err
	}
	message, err := c.client.ApplySettings(ctx, address, patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, message)
	return nil
}

func (c *cli) miners() error {
	reg, err := registry.Open(c.cfg.MinersFile)
	if err != nil {
		return err
	}
	list := reg.List()
	if len(list) == 0 {
		fmt.Fprintf(c.stdout, "No miners saved in %s\n", reg.Path())
		return nil
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tADDRESS\tID\tADDED")
	for _, miner := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", miner.DisplayName(), miner.Address, miner.ID, miner.AddedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func (c *cli) rename(args []string) error {
	if len(args) != 2 {
		return errors.New("expected a saved miner and a new name")
	}
	reg, err := registry.Open(c.cfg.MinersFile)
	if err != nil {
		return err
	}
	miner, ok := findSaved(reg, args[0])
	if !ok {
		return fmt.Errorf("%q: %w", args[0], registry.ErrNotFound)
	}
	if err := reg.Rename(miner.ID, args[1]); err != nil {
		return err
	}
	renamed, _ := reg.Find(miner.ID)
	c.logger.Info("miner renamed", zap.String("id", renamed.ID), zap.String("name", renamed.Name))
	fmt.Fprintf(c.stdout, "Renamed %s to %s\n", miner.DisplayName(), renamed.DisplayName())
	return nil
}
