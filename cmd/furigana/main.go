// Command furigana runs the furigana annotation service or annotates a
// single text from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andyroo2000/convo-lab/annotate"
	"github.com/andyroo2000/convo-lab/config"
	"github.com/andyroo2000/convo-lab/lexicon"
	"github.com/andyroo2000/convo-lab/server"
	"github.com/andyroo2000/convo-lab/tokenize"
)

var (
	cfgPath  string
	addr     string
	dictName string
	verbose  bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "furigana",
	Short: "Furigana annotation service for Japanese text",
	Long: `furigana tokenizes Japanese text with kagome and annotates each word
with its reading in bracket form: 今日[きょう]は良[よ]い天気[てんき]です.

Run "furigana serve" to expose the annotator over HTTP, or
"furigana annotate" for a one-shot annotation on the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the furigana HTTP API",
	RunE:  runServe,
}

var annotateCmd = &cobra.Command{
	Use:   "annotate [text]",
	Short: "Annotate one text and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if dictName != "" {
		cfg.Dict = dictName
	}
	return cfg, nil
}

// newAnnotator builds the annotator, degrading to tokenizer-less mode
// when the dictionary fails to initialize.
func newAnnotator(cfg *config.Config) *annotate.Annotator {
	tok, err := tokenize.New(cfg.Dict)
	if err != nil {
		logger.Warn("tokenizer unavailable, serving unannotated text",
			zap.String("dict", cfg.Dict), zap.Error(err))
		tok = nil
	}
	return annotate.New(tok, lexicon.Load(), logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ann := newAnnotator(cfg)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, ann, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr),
			zap.String("dict", cfg.Dict), zap.Bool("tokenizer", ann.Ready()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ann := newAnnotator(cfg)

	res, err := ann.Annotate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "furigana.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&dictName, "dict", "", "tokenizer dictionary: ipa or uni")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd, annotateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
