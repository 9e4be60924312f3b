// Copyright 2025 The WordCoach Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the WordCoach suggestion server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordCoach suggests the next word, phrase or grammar reminder for young and
EAL writers. Given the text typed so far and a caret position it classifies
the context around the caret, checks the text against a set of writing
objectives and draws candidates from a levelled lexicon. It runs as a
MessagePack IPC server for editor integration, or as a CLI for testing.

# Usage

Start the server with default settings:

	wordcoach

Enable debug logs and remote word suggestions:

	wordcoach -d -remote

Run in CLI mode at the advanced level:

	wordcoach -c -level advanced -cap 10

Extend the builtin lexicon with a CSV file of category,text,level,hint rows:

	wordcoach -lexicon extra.csv

# Configuration

Runtime configuration lives in config.toml in the user config dir and is
created with defaults when missing:

	[engine]
	word_bank_cap = 6
	workspace_cap = 10
	prefix_limit = 6
	default_level = "beginner"
	memoize_assessment = true

	[remote]
	enabled = false
	base_url = "https://api.datamuse.com"
	timeout_ms = 2000
	debounce_ms = 175
	max_results = 10

	[server]
	max_text_length = 20000
	max_cap = 32

	[lexicon]
	override_csv = ""

	[cli]
	default_cap = 8
	default_level = "intermediate"

Flags take priority over the file. Use -reset-config to rewrite the default
file.

# IPC Protocol

The server reads MessagePack requests from stdin and writes responses to
stdout. See package server for the message shapes.

	{"id": "req1", "op": "suggest", "text": "I like ", "level": "beginner"}
	{"id": "req1", "s": [{"w": "to", "r": 1}, {"w": "playing", "r": 2}], "c": 2, "label": "default", "final": true, "tok": 1, "t": 120}

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to a config file
	-level string
	    Support level (beginner, intermediate, advanced)
	-cap int
	    Number of suggestions to return
	-lexicon string
	    CSV file with extra lexicon entries
	-remote
	    Ask the remote word service for more candidates
	-reset-config
	    Rewrite the default config file and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/internal/cli"
	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/config"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
	"github.com/bastiangx/wordcoach/pkg/remote"
	"github.com/bastiangx/wordcoach/pkg/server"
	"github.com/bastiangx/wordcoach/pkg/suggest"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordcoach"
	gh      = "https://github.com/bastiangx/wordcoach"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, engine, server and CLI.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a custom config file")
	levelFlag := flag.String("level", "", "Support level: beginner, intermediate or advanced (default from config)")
	capFlag := flag.Int("cap", 0, "Number of suggestions to return (default from config)")
	lexiconFile := flag.String("lexicon", "", "CSV file with extra lexicon entries (category,text,level,hint)")
	remoteMode := flag.Bool("remote", false, "Ask the remote word service for more candidates")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Printf("Config rewritten at %s", config.GetActiveConfigPath(""))
		return
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))
	if *remoteMode {
		appConfig.Remote.Enabled = true
	}

	store := loadLexicon(firstNonEmpty(*lexiconFile, appConfig.Lexicon.OverrideCSV))
	log.Debug("Lexicon loaded", "stats", store.Stats())

	engine := suggest.NewEngine(store, suggest.Options{
		PrefixLimit: appConfig.Engine.PrefixLimit,
		Memoize:     appConfig.Engine.MemoizeAssessment,
	})
	client := remote.NewClient(remote.Options{
		BaseURL:    appConfig.Remote.BaseURL,
		Timeout:    appConfig.Remote.Timeout(),
		MaxResults: appConfig.Remote.MaxResults,
	})

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		level := appConfig.CLI.Level()
		if *levelFlag != "" {
			level = parseLevelFlag(*levelFlag)
		}
		limit := appConfig.CLI.DefaultCap
		if *capFlag > 0 {
			limit = *capFlag
		}
		var fetcher suggest.Fetcher
		if appConfig.Remote.Enabled {
			fetcher = client
		}
		log.Debug("Input info:", "level", level, "cap", limit, "remote", appConfig.Remote.Enabled)

		inputHandler := cli.NewInputHandler(engine, fetcher, appConfig.Remote.Debounce(), level, limit, os.Stdin, os.Stderr)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *levelFlag != "" {
		level := parseLevelFlag(*levelFlag).String()
		appConfig.Engine.DefaultLevel = level
	}
	if *capFlag > 0 {
		appConfig.Engine.WorkspaceCap = *capFlag
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, client, appConfig, configPath)

	showStartupInfo(appConfig, store)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadLexicon builds the builtin store, extended by the CSV at path when
// one can be found. A broken override file is logged and skipped.
func loadLexicon(path string) *lexicon.Store {
	if path == "" {
		return lexicon.Builtin()
	}

	resolved := path
	if pathResolver, err := utils.NewPathResolver(); err == nil {
		log.Debug("Runtime info", "info", pathResolver.GetRuntimeInfo())
		if found, err := pathResolver.ResolveDataFile(path); err == nil {
			resolved = found
		}
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}

	store, err := lexicon.LoadWithOverrides(resolved)
	if err != nil {
		log.Errorf("Ignoring lexicon override: %v", err)
		return lexicon.Builtin()
	}
	return store
}

func parseLevelFlag(s string) lexicon.Level {
	level, ok := lexicon.ParseLevel(s)
	if !ok {
		log.Warnf("Unknown level %q, using %s", s, level)
	}
	return level
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordCoach ] Next word suggestions for young writers")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(cfg *config.Config, store *lexicon.Store) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" WordCoach ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("lexicon: %d entries", store.Stats()["entries"])
	log.Infof("level: %s, remote: %t", cfg.Engine.Level(), cfg.Remote.Enabled)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
