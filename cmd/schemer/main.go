package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/wilbur182/schemer/internal/app"
	"github.com/wilbur182/schemer/internal/bundled"
	"github.com/wilbur182/schemer/internal/config"
	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/store"
	"github.com/wilbur182/schemer/internal/version"
)

var (
	dirFlag     = flag.String("dir", "", "scheme directory (overrides config)")
	schemeFlag  = flag.String("scheme", "", "start with this scheme active")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: schemer [options]\n\n")
		fmt.Fprintf(os.Stderr, "A TUI for browsing and managing editor color schemes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("schemer version %s\n", effectiveVersion(version.Version))
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "schemer needs a terminal to run")
		os.Exit(1)
	}

	// The terminal belongs to the UI; route logs to a file.
	if f, err := os.OpenFile(config.ExpandPath("~/.config/schemer/schemer.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *schemeFlag != "" {
		cfg.Schemes.Current = *schemeFlag
	}

	bundled.SeedRegistry()

	dir := cfg.SchemeDir()
	if *dirFlag != "" {
		dir = config.ExpandPath(*dirFlag)
	}
	st, err := store.Open(dir, registry.ResolveDefault)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open scheme directory: %v\n", err)
		os.Exit(1)
	}
	schemes, err := st.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load schemes: %v\n", err)
		os.Exit(1)
	}
	for _, s := range schemes {
		registry.Register(s)
	}

	go checkForUpdate()

	model := app.New(cfg, st)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// checkForUpdate refreshes the cached release check in the background.
func checkForUpdate() {
	current := effectiveVersion(version.Version)
	if entry, err := version.LoadCache(); err == nil && version.IsCacheValid(entry, current) {
		return
	}
	result := version.Check(current)
	if result.Error != nil || result.LatestVersion == "" {
		return
	}
	_ = version.SaveCache(&version.CacheEntry{
		LatestVersion:  result.LatestVersion,
		CurrentVersion: current,
		CheckedAt:      time.Now(),
		HasUpdate:      result.HasUpdate,
	})
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" && v != "devel" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}
