package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/wordvec/internal/config"
	"github.com/matsen/wordvec/internal/embedding"
)

var (
	getFormat  string
	getCharset string
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getFormat, "format", "", "File layout: "+strings.Join(FormatNames, ", "))
	getCmd.Flags().StringVar(&getCharset, "charset", "", "Character set of word tokens")
}

var getCmd = &cobra.Command{
	Use:   "get <file> <word>",
	Short: "Print one word's embedding vector",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	format := getFormat
	if format == "" {
		format = cfg.Format
	}
	charsetName := getCharset
	if charsetName == "" {
		charsetName = cfg.Charset
	}

	tbl, err := loadTable(format, args[0], charsetName, cfg.MaxWords)
	if err != nil {
		return err
	}
	vec, ok := tbl.Vector(args[1])
	if !ok {
		return fmt.Errorf("%w: %q", embedding.ErrNotFound, args[1])
	}

	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 6, 32)
	}
	fmt.Println(strings.Join(parts, " "))
	return nil
}
