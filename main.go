package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"battray/battery"
	"battray/config"
	"battray/doctor"
	"battray/icon"
	"battray/log"
	"battray/login"
	"battray/shutdown"
	"battray/tray"

	"github.com/atotto/clipboard"
)

var version = "dev"

var (
	statusMu   sync.Mutex
	statusText string
	updates    int
)

var shutdownOnce sync.Once

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		statusMu.Lock()
		n := updates
		statusMu.Unlock()
		if n > 0 {
			log.SessionEnd(n)
		}
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

func main() {
	run()
}

func run() {
	configFlag := flag.String("config", "", "Config file path (default: OS-specific location)")
	intervalFlag := flag.Duration("interval", 0, "Battery poll interval (overrides config, e.g. 2s)")
	styleFlag := flag.String("style", "", "Icon style: numeral or gauge (overrides config)")
	tuiFlag := flag.Bool("tui", false, "Run with terminal UI alongside the tray")
	demoFlag := flag.Bool("demo", false, "Sweep 0-100 instead of reading the battery")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("battray %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run())
	}

	var cfg config.Config
	var err error
	if *configFlag != "" {
		cfg, err = config.Load(*configFlag)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *intervalFlag > 0 {
		cfg.Interval = *intervalFlag
	}
	if *styleFlag != "" {
		cfg.Style = *styleFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Resolve log directory early
	logPathArg := *logPathFlag
	if logPathArg == "" {
		logPathArg = cfg.LogPath
	}
	logPath, err := log.ResolveDir(logPathArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(cfg.Style, cfg.Interval.String())
	}

	style, err := icon.ParseStyle(cfg.Style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fg, err := icon.ParseColor(cfg.Foreground)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bg, err := icon.ParseColor(cfg.Background)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fallback := icon.Default(cfg.IconSize, fg)
	renderer, err := icon.NewRenderer(icon.Config{
		Size:       cfg.IconSize,
		Style:      style,
		Foreground: fg,
		Background: bg,
	})
	if err != nil {
		// Non-fatal: run with the static fallback icon.
		log.Errorf("renderer init error: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: icon renderer unavailable: %v\n", err)
	}

	var src battery.Source
	if *demoFlag {
		src = battery.NewDemo()
	} else {
		src = battery.NewSystemSource()
	}
	if _, err := src.Read(); err != nil {
		log.Warnf("initial battery read failed: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: battery unreadable: %v\n", err)
	}
	mon := newMonitor(src)

	tray.OnCopyStatus(func() {
		statusMu.Lock()
		text := statusText
		statusMu.Unlock()
		if text != "" {
			clipboard.WriteAll(text)
		}
	})
	tray.SetLogin(login.Enabled())
	tray.OnLogin(func(on bool) error {
		if err := login.Set(on); err != nil {
			log.Errorf("start on login: %v", err)
			return err
		}
		log.Info(fmt.Sprintf("start_on_login: %t", on))
		return nil
	})

	if *tuiFlag {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram()
		tuiMu.Unlock()
		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
			}
			tray.Quit()
		}()
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		tray.Quit()
	}()

	// Blocks until the user quits; the poll loop runs alongside.
	tray.Run(func() {
		tray.SetIcon(fallback)
		go eventLoop(cfg.Interval, renderer, fallback, mon)
	})

	gracefulShutdown()
}

const failureWarnThreshold = 5

func eventLoop(interval time.Duration, renderer *icon.Renderer, fallback []byte, mon *monitor) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step(renderer, fallback, mon)
	for {
		select {
		case <-ticker.C:
			step(renderer, fallback, mon)
		case <-tray.QuitRequested():
			return
		}
	}
}

func step(renderer *icon.Renderer, fallback []byte, mon *monitor) {
	r, changed := mon.Poll()
	if n := mon.Failures(); n == failureWarnThreshold {
		log.Warnf("battery read failing (%d consecutive), keeping last reading", n)
		tuiSend(StatusMsg{Text: "battery read failing, showing last value"})
	}
	if !changed {
		return
	}

	data := fallback
	if renderer != nil {
		rendered, err := renderer.Render(r.Percent, r.State == battery.StateCharging)
		if err != nil {
			log.Errorf("render error: %v", err)
		} else {
			data = rendered
		}
	}
	tray.SetIcon(data)

	tip := tooltipText(r)
	tray.SetTooltip(tip)

	statusMu.Lock()
	statusText = tip
	updates++
	statusMu.Unlock()

	log.Reading(r.Percent, r.State.String())
	tuiSend(ReadingMsg{Percent: r.Percent, State: r.State.String()})
}

func tooltipText(r battery.Reading) string {
	switch r.State {
	case battery.StateCharging:
		return fmt.Sprintf("Charging: %d%%", r.Percent)
	case battery.StateDischarging:
		return fmt.Sprintf("Discharging: %d%%", r.Percent)
	case battery.StateFull:
		return "Full"
	}
	return fmt.Sprintf("Battery: %d%%", r.Percent)
}
