package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/wordvec/internal/config"
	"github.com/matsen/wordvec/internal/storage"
)

var (
	indexFormat  string
	indexCharset string
	indexLookup  string
)

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexFormat, "format", "", "File layout: "+strings.Join(FormatNames, ", "))
	indexCmd.Flags().StringVar(&indexCharset, "charset", "", "Character set of word tokens")
	indexCmd.Flags().StringVar(&indexLookup, "lookup", "", "After building, print this word's vector from the index")
}

var indexCmd = &cobra.Command{
	Use:   "index <file> <db>",
	Short: "Build a SQLite index of an embedding table",
	Long: `Build a SQLite index of an embedding table for fast single-word lookups.

The index is rebuilt from scratch on every run; the embedding file remains
the canonical copy of the data.`,
	Args: cobra.ExactArgs(2),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	format := indexFormat
	if format == "" {
		format = cfg.Format
	}
	charsetName := indexCharset
	if charsetName == "" {
		charsetName = cfg.Charset
	}

	tbl, err := loadTable(format, args[0], charsetName, cfg.MaxWords)
	if err != nil {
		return err
	}

	db, err := storage.OpenDB(args[1])
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Rebuild(tbl)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d words of dimension %d into %s\n", n, tbl.Dim, args[1])

	if indexLookup != "" {
		vec, err := db.Vector(indexLookup)
		if err != nil {
			return err
		}
		parts := make([]string, len(vec))
		for i, v := range vec {
			parts[i] = fmt.Sprintf("%.6f", v)
		}
		fmt.Printf("%s %s\n", indexLookup, strings.Join(parts, " "))
	}
	return nil
}
