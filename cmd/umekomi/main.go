// Package main is the umekomi CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/umekomi/internal/cli"
	"github.com/hyperjump/umekomi/internal/config"
	"github.com/hyperjump/umekomi/internal/encoder"
	"github.com/hyperjump/umekomi/internal/models"
	"github.com/hyperjump/umekomi/internal/server"
	"github.com/hyperjump/umekomi/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/umekomi/config.yaml"
	defaultServerURL  = "http://localhost:5003"
)

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "embed":
		runEmbed()
	case "batch":
		runBatch()
	case "similarity":
		runSimilarity()
	case "health":
		runHealth()
	case "version", "--version", "-v":
		fmt.Printf("umekomi version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`umekomi - text embedding service

Usage:
  umekomi server [-config path] [-debug]            run the embedding service
  umekomi embed [flags] <text...>                   embed one text
  umekomi batch [flags] <text> <text> ...           embed several texts
  umekomi similarity [flags] <text1> <text2>        cosine similarity of two texts
  umekomi health [flags]                            service health
  umekomi version                                   print version

Client flags:
  -server URL       service base URL (default ` + defaultServerURL + `)
  -instruction s    instruction prefix for retrieval embeddings (embed/batch)
  -output format    text or json (default text)
`)
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("model", cfg.Model.Name),
		zap.Int("max_batch_size", cfg.Model.MaxBatchSize),
		zap.Bool("debug", debugMode),
	)

	engine := encoder.NewEngine(&cfg.Model, logger)
	defer engine.Close()

	// Load in the background so /health reports "loading" until the warm-up
	// inference completes. A failed load keeps the engine not-ready: health
	// stays on "loading" and inference returns 503, never silent traffic.
	go func() {
		if err := engine.Load(context.Background()); err != nil {
			logger.Error("model load failed", zap.Error(err))
		}
	}()

	srv := server.NewServer(engine, &cfg.Server, logger, version)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runEmbed() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "service base URL")
	instruction := fs.String("instruction", "", "instruction prefix for retrieval embeddings")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	text := buildText(fs.Args())
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage: umekomi embed [flags] <text...>")
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var resp models.EmbedResponse
	req := &models.EmbedRequest{Text: &text, Instruction: *instruction}
	if err := postJSON(*serverURL+"/embed", req, &resp); err != nil {
		fmt.Fprintf(os.Stderr, "Embed failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteEmbedding(os.Stdout, &resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runBatch() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "service base URL")
	instruction := fs.String("instruction", "", "instruction prefix applied to all texts")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	texts := fs.Args()
	if len(texts) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: umekomi batch [flags] <text> <text> ...")
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var resp models.EmbedBatchResponse
	req := &models.EmbedBatchRequest{Texts: texts, Instruction: *instruction}
	if err := postJSON(*serverURL+"/embed/batch", req, &resp); err != nil {
		fmt.Fprintf(os.Stderr, "Batch embed failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteBatch(os.Stdout, &resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSimilarity() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("similarity", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "service base URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: umekomi similarity [flags] <text1> <text2>")
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	text1, text2 := fs.Arg(0), fs.Arg(1)
	var resp models.SimilarityResponse
	req := &models.SimilarityRequest{Text1: &text1, Text2: &text2}
	if err := postJSON(*serverURL+"/similarity", req, &resp); err != nil {
		fmt.Fprintf(os.Stderr, "Similarity failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSimilarity(os.Stdout, &resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runHealth() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "service base URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(args)

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var resp models.HealthResponse
	if err := getJSON(*serverURL+"/health", &resp); err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteHealth(os.Stdout, &resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func parseOutputFormat(s string) (cli.OutputFormat, error) {
	switch s {
	case "json":
		return cli.OutputJSON, nil
	case "text":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// buildText joins all positional args with spaces so multi-word texts work
// the same with or without shell quoting.
func buildText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after positional
// args to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func postJSON(url string, reqBody, respBody interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func getJSON(url string, respBody interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
