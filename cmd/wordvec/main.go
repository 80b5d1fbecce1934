// Package main provides the wordvec CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/wordvec/internal/embedding"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Pick up WORDVEC_* overrides from a .env file if one is present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordvec",
	Short: "Read, convert, and index word-embedding tables",
	Long: `wordvec reads and writes word-embedding tables in the word2vec binary,
word2vec text, and bare text file layouts, converts between them, and can
build a SQLite index for fast single-word lookups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}

// exitCode maps an error to the CLI exit code contract.
func exitCode(err error) int {
	switch {
	case errors.Is(err, embedding.ErrFormat),
		errors.Is(err, embedding.ErrTruncated),
		errors.Is(err, embedding.ErrLengthMismatch):
		return ExitDataError
	case errors.Is(err, embedding.ErrUnknownCharset):
		return ExitConfigError
	case errors.Is(err, embedding.ErrNotFound):
		return ExitNotFound
	}
	return ExitError
}
