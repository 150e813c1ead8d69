package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/jeanpaul/assistant/internal/commands"
	"github.com/jeanpaul/assistant/internal/config"
	"github.com/jeanpaul/assistant/internal/headless"
	"github.com/jeanpaul/assistant/internal/health"
	"github.com/jeanpaul/assistant/internal/history"
	"github.com/jeanpaul/assistant/internal/logger"
	"github.com/jeanpaul/assistant/internal/storage"
	"github.com/jeanpaul/assistant/internal/tui"
)

const historyFile = "history.json"

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: search ./config.yaml, then the user config dir)")
	headlessFlag := flag.Bool("headless", false, "Read commands from stdin without the full-screen UI")
	echoFlag := flag.Bool("echo", false, "In headless mode, repeat each command before its reply")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("assistant %s (%s)\n", version, commit)
		os.Exit(0)
	}
	commands.Version = version

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "init-config":
			path := filepath.Join(config.Dir(), "config.yaml")
			if len(args) > 1 {
				path = args[1]
			}
			cmdInitConfig(path)
			return
		case "birthdays", "export", "doctor":
			// handled below, after the session is loaded
		default:
			fatal("unknown command %q (try 'assistant help')", args[0])
		}
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config error: %s", err)
	}

	log, err := logger.New(cfg.LoggerOptions(), cfg.DataDir)
	if err != nil {
		fatal("logger: %s", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(cfg.StorageOptions(), log)
	if err != nil {
		fatal("storage: %s", err)
	}
	session := commands.NewSession(cfg, store, log)
	defer session.Close()

	if len(args) > 0 && args[0] == "doctor" {
		cmdDoctor(ctx, cfg, store)
		return
	}

	if err := session.Load(ctx); err != nil {
		log.Error("load failed", zap.Error(err))
		fatal("%s", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "birthdays":
			cmdBirthdays(session, cfg, args[1:])
		case "export":
			if len(args) != 2 {
				fatal("usage: assistant export <file.xlsx>")
			}
			reply := commands.Default().Dispatch(ctx, session, "export "+args[1])
			printReply(reply)
			if reply.Status == commands.StatusError {
				os.Exit(1)
			}
		}
		return
	}

	reg := commands.Default()
	log.Info("assistant started", zap.String("version", version), zap.String("store", store.Location()))

	if *headlessFlag || !isatty.IsTerminal(os.Stdin.Fd()) {
		if err := headless.Run(ctx, reg, session, os.Stdin, os.Stdout, os.Stderr, headless.Options{Echo: *echoFlag}); err != nil {
			fatal("%s", err)
		}
		return
	}

	hist, err := history.Open(filepath.Join(cfg.DataDir, historyFile), history.DefaultLimit)
	if err != nil {
		// A broken history file should not keep the assistant from starting.
		log.Warn("history not loaded", zap.Error(err))
	}
	if err := tui.Run(ctx, reg, session, tui.Options{Theme: tui.NewTheme(cfg.Theme), History: hist}); err != nil {
		log.Error("ui exited", zap.Error(err))
		fatal("%s", err)
	}
}

func cmdDoctor(ctx context.Context, cfg *config.Config, store storage.Store) {
	fmt.Println(color.New(color.FgGreen, color.Bold).Sprint("Assistant doctor"))
	list := health.Check(ctx, cfg, store)
	for _, s := range list {
		if s.OK {
			fmt.Printf("  %s %-10s %s %s\n", color.GreenString("✓"), s.Name, s.Detail, color.HiBlackString("(%s)", s.Latency.Round(time.Microsecond)))
		} else {
			fmt.Printf("  %s %-10s %s\n", color.RedString("✗"), s.Name, color.RedString(s.Error))
		}
	}
	if !health.Healthy(list) {
		os.Exit(1)
	}
}

func cmdBirthdays(session *commands.Session, cfg *config.Config, args []string) {
	days := cfg.Birthdays.DefaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("days must be a whole number, got %q", args[0])
		}
		days = n
	}
	reply, err := commands.BirthdayReply(session, days)
	if err != nil {
		fatal("%s", commands.Message(err))
	}
	printReply(reply)
}

func cmdInitConfig(path string) {
	if _, err := os.Stat(path); err == nil {
		fatal("%s already exists", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		fatal("write config: %s", err)
	}
	fmt.Println(color.GreenString("✓ Wrote default config to %s", path))
}

func printReply(r commands.Reply) {
	switch r.Status {
	case commands.StatusError:
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, r.Text)
	case commands.StatusNotice:
		color.New(color.FgYellow).Fprintln(os.Stderr, r.Text)
	default:
		fmt.Println(r.Text)
	}
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, color.RedString("error: %s", msg))
	os.Exit(1)
}

func showHelp() {
	bold := color.New(color.FgGreen, color.Bold).SprintFunc()
	help := `
` + bold("Assistant") + ` - contacts, birthdays and notes for your terminal

` + bold("USAGE:") + `
  assistant [flags]               Start the interactive assistant
  assistant <command> [args]      Run a one-shot command

` + bold("COMMANDS:") + `
  birthdays [days]                List upcoming birthdays and exit
  doctor                          Check config, data dir and storage
  export <file.xlsx>              Export contacts and notes to a spreadsheet
  init-config [path]              Write a default config file
  help                            Show this help

` + bold("FLAGS:") + `
  -config <path>                  Use a specific config file
  -headless                       Read commands from stdin (also used when stdin is not a terminal)
  -echo                           Repeat commands in headless output
  -version                        Show version
  -h, -help                       Show this help

Inside the assistant, type 'help' for the command list.
`
	fmt.Print(help)
}
