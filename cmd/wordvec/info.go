package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/wordvec/internal/config"
)

var (
	infoFormat  string
	infoCharset string
	infoPreview int
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVar(&infoFormat, "format", "", "File layout: "+strings.Join(FormatNames, ", "))
	infoCmd.Flags().StringVar(&infoCharset, "charset", "", "Character set of word tokens")
	infoCmd.Flags().IntVar(&infoPreview, "preview", 5, "Number of leading words to print")
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print word count, dimension, and leading words of a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	format := infoFormat
	if format == "" {
		format = cfg.Format
	}
	charsetName := infoCharset
	if charsetName == "" {
		charsetName = cfg.Charset
	}

	tbl, err := loadTable(format, args[0], charsetName, cfg.MaxWords)
	if err != nil {
		return err
	}

	fmt.Printf("words:     %d\n", tbl.Rows())
	fmt.Printf("dimension: %d\n", tbl.Dim)
	n := infoPreview
	if n > tbl.Rows() {
		n = tbl.Rows()
	}
	if n > 0 {
		fmt.Printf("first:     %s\n", strings.Join(tbl.Vocab.Words[:n], " "))
	}
	return nil
}
