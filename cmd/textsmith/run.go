package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"textsmith/cmd/textsmith/config"
	"textsmith/internal/gemini"
	"textsmith/internal/prompt"
)

var (
	runLength  string
	runStyle   string
	runKey     string
	runModel   string
	runTimeout time.Duration
)

// runCmd executes a single transformation without the TUI.
var runCmd = &cobra.Command{
	Use:   "run <summarize|paraphrase> [text...]",
	Short: "Run a single transformation and print the result",
	Long: `Transforms the given text in one shot and prints the generated result to
stdout. Text is taken from the arguments, or from stdin when no text argument
is given:

  textsmith run summarize --length concise "long article text..."
  cat notes.txt | textsmith run paraphrase --style casual`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOneShot,
}

func init() {
	runCmd.Flags().StringVar(&runLength, "length", string(prompt.LengthStandard),
		"summary length: concise, standard or detailed")
	runCmd.Flags().StringVar(&runStyle, "style", string(prompt.StyleFormal),
		"paraphrase style: formal, casual or creative")
	runCmd.Flags().StringVar(&runKey, "key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	runCmd.Flags().StringVar(&runModel, "model", "", "model identifier (defaults to the configured model)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "request timeout (defaults to the configured timeout)")
}

func runOneShot(cmd *cobra.Command, args []string) error {
	mode := prompt.Mode(strings.ToLower(args[0]))
	if mode != prompt.ModeSummarize && mode != prompt.ModeParaphrase {
		return fmt.Errorf("unknown mode %q (want summarize or paraphrase)", args[0])
	}

	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("no input text provided")
	}

	cfg, _ := config.Load()
	if runModel != "" {
		cfg.Model = runModel
	}
	if runTimeout > 0 {
		cfg.Timeout = config.Duration(runTimeout)
	}

	apiKey := runKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	p := prompt.Build(mode, text, prompt.SummaryLength(runLength), prompt.ParaphraseStyle(runStyle))
	logger.Debug("one-shot generation",
		zap.String("mode", string(mode)),
		zap.Int("input_len", len(text)))

	client := gemini.NewClientWithConfig(gemini.Config{
		APIKey:  apiKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout.Std(),
		Logger:  logger,
	})

	result, err := client.Generate(context.Background(), p)
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}
