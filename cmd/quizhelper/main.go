package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-helper/capture"
	"quiz-helper/clipboard"
	"quiz-helper/config"
	"quiz-helper/hotkey"
	"quiz-helper/keywords"
	"quiz-helper/ocr"
	"quiz-helper/pipeline"
	"quiz-helper/search"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg.EnableFileLogging)

	segmenter := keywords.NewJieba()
	defer segmenter.Free()

	fetcher, err := newFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to start search fetcher: %v", err)
	}
	defer fetcher.Close()

	provider := newCaptureProvider(cfg)

	p := pipeline.New(pipeline.Options{
		Capture: provider,
		OCR: ocr.NewClient(ocr.Config{
			AppID:     cfg.OCR.AppID,
			APIKey:    cfg.OCR.AppKey,
			SecretKey: cfg.OCR.SecretKey,
		}),
		Reducer:        keywords.NewReducer(segmenter, cfg.Keywords.TopN),
		Aggregator:     search.NewAggregator(fetcher, cfg.Search.BaseURL, cfg.Search.Pages),
		Question:       cfg.Question,
		Choices:        cfg.Choices,
		UseRawQuestion: cfg.Search.UseRawQuestion,
	})

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable, answers will not be copied: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first capture on a device is noticeably slow; warm it up off
	// the trigger path.
	go func() {
		if _, err := provider.Capture(ctx); err != nil {
			log.Printf("Warm-up capture failed: %v", err)
		}
	}()

	runCh := make(chan struct{}, 1)
	if cfg.Hotkey != "" {
		hotkey.Listen(cfg.Hotkey, func() {
			select {
			case runCh <- struct{}{}:
			default:
			}
		})
	}
	go watchStdin(runCh)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Quiz helper started")
	log.Printf("Press enter to run, Ctrl+C to exit")

	for {
		select {
		case <-sigCh:
			log.Printf("Shutting down...")
			return
		case <-runCh:
			go runOnce(ctx, p, cfg.Search.Timeout())
		}
	}
}

// watchStdin posts a run request for every line on stdin, dropping
// triggers while one is already queued.
func watchStdin(runCh chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case runCh <- struct{}{}:
		default:
		}
	}
}

func runOnce(ctx context.Context, p *pipeline.Pipeline, timeout time.Duration) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Printf("Running...")
	res, err := p.Run(runCtx)
	if errors.Is(err, pipeline.ErrRunInFlight) {
		log.Printf("Busy, please retry")
		return
	}
	if err != nil {
		log.Printf("Run failed: %v", err)
		return
	}

	fmt.Printf("Question: %s\n", res.Question)
	for _, c := range res.Candidates {
		fmt.Printf("Choice: %s - %d\n", c.Candidate, c.Count)
	}

	best, ok := res.Best()
	if !ok {
		fmt.Println("Answer: no candidates recognized")
		return
	}
	fmt.Printf("Answer: 『%s』\n", best.Candidate)
	if worst, _ := res.Worst(); len(res.Candidates) > 1 {
		fmt.Printf("Least mentioned: %s\n", worst.Candidate)
	}

	if err := clipboard.Write(best.Candidate); err != nil {
		log.Printf("Clipboard error: %v", err)
	}
	log.Printf("Run finished in %s", res.Elapsed.Round(time.Millisecond))
}

func newFetcher(cfg *config.Config) (search.Fetcher, error) {
	if cfg.Search.Fetcher == "browser" {
		return search.NewBrowserFetcher()
	}
	return search.NewHTTPFetcher(cfg.Search.Timeout()), nil
}

func newCaptureProvider(cfg *config.Config) capture.Provider {
	if cfg.Capture.Backend == "display" {
		return &capture.Display{Index: cfg.Capture.Display}
	}
	return &capture.ADB{Serial: cfg.Capture.ADBSerial}
}

func setupLogging(enableFileLogging bool) {
	if !enableFileLogging {
		return
	}
	logFile, err := os.OpenFile("quiz_helper.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
}
