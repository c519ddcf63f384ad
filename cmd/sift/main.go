// Copyright 2026 The Sift Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the sift suggestion ranking server and CLI [DBG] application.

Sift provides fuzzy suggestion ranking over word lists using tiered match
scoring backed by a Patricia trie. It can operate as a MessagePack IPC
server for integration with editors and pickers, or as a CLI application
for testing and debugging.

# Usage

Start the server with default settings:

	sift -words /path/to/words.txt

Enable debug mode:

	sift -words /path/to/words.txt -d

Run in CLI mode for interactive testing:

	sift -words /path/to/words.txt -c -limit 10

The word list is a plain text file with one entry per line; an optional
tab-separated weight becomes the suggestion payload. Blank lines and
lines starting with '#' are skipped.

# Configuration

Runtime configuration is managed through a TOML file that supports
ranking, filter, sort, and server parameters:

	[suggest]
	max_suggestions = 8
	min_query_length = 1
	debounce_ms = 200
	fuzzy = true

	[server]
	max_limit = 64

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Query requests
are processed synchronously with microsecond timing information included
in responses.

Send a query request:

	{"id": "req1", "q": "hel", "l": 20}

Receive suggestions ranked by match score:

	{"id": "req1", "s": [{"w": "hello", "r": 1}, {"w": "help", "r": 2}], "c": 2, "t": 145}

Config requests allow runtime adjustment of ranking parameters:

	{"id": "cfg1", "action": "get"}
	{"id": "cfg2", "action": "set", "max_suggestions": 16}

# Server Mode

The default mode starts a MessagePack IPC server that processes query
requests from stdin and writes responses to stdout. This design enables
integration with editors and other applications through process
communication.

	srv := server.NewServer(lexicon, cfg)
	err := srv.Start()

# CLI Mode

CLI mode provides an interactive interface for testing and debugging
ranking behavior. It reads queries from stdin and displays scored
suggestions.

	inputHandler := cli.NewInputHandler(lexicon, opts, minLen, maxLen, limit)
	err := inputHandler.Start()

# Command Line Flags

The following flags control application behavior:

	-words string
	    Path to the word list file
	-config string
	    Path to a custom config.toml
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return (default from config)
	-qmin int
	    Minimum query length for suggestions
	-qmax int
	    Maximum query length for suggestions
	-no-fuzzy
	    Disable fuzzy subsequence matching (prefix and substring tiers only)
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

	"github.com/fluentkit/sift/internal/cli"
	"github.com/fluentkit/sift/internal/logger"
	"github.com/fluentkit/sift/pkg/config"
	"github.com/fluentkit/sift/pkg/match"
	"github.com/fluentkit/sift/pkg/server"
	"github.com/fluentkit/sift/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "sift"
	gh      = "https://github.com/fluentkit/sift"
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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	wordsPath := flag.String("words", "", "Path to the word list file")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.Suggest.MaxSuggestions, "Number of suggestions to return")
	minQuery := flag.Int("qmin", defaultConfig.Suggest.MinQueryLength, "Minimum query length for suggestions")
	maxQuery := flag.Int("qmax", 60, "Maximum query length for suggestions")
	noFuzzy := flag.Bool("no-fuzzy", false, "Disable fuzzy subsequence matching")

	flag.Parse()

	if *showVersion {
		banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		banner.SetStyles(styles)

		banner.Print("")
		banner.Print("[ Sift ] Ranks suggestions really fast!")
		banner.Print("", "version", Version)
		banner.Print("")
		banner.Print("use -h or --help to see available options")
		banner.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	var lexicon *suggest.Lexicon
	if *wordsPath != "" {
		lexicon, err = suggest.LoadWordList(*wordsPath)
		if err != nil {
			log.Fatalf("Failed to load word list: %v", err)
			os.Exit(1)
		}
		log.Debugf("Loaded %d entries from %s", lexicon.Len(), *wordsPath)
	} else {
		log.Warn("No word list specified, running with empty lexicon...")
		lexicon = suggest.NewLexicon()
	}

	if *noFuzzy {
		appConfig.Suggest.Fuzzy = false
	}
	opts := match.Options{
		Fuzzy:         appConfig.Suggest.Fuzzy,
		CaseSensitive: appConfig.Suggest.CaseSensitive,
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minQuery", *minQuery,
			"maxQuery", *maxQuery,
			"limit", *limit,
			"fuzzy", opts.Fuzzy)

		inputHandler := cli.NewInputHandler(lexicon, opts, *minQuery, *maxQuery, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(lexicon, appConfig)

	showStartupInfo(*wordsPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(wordsPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("word list: ( %s )", wordsPath)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
