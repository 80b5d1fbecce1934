package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/wordvec/internal/config"
)

var (
	convertFrom     string
	convertTo       string
	convertCharset  string
	convertMaxWords int
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Input layout: "+strings.Join(FormatNames, ", "))
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Output layout: "+strings.Join(FormatNames, ", "))
	convertCmd.Flags().StringVar(&convertCharset, "charset", "", "Character set of word tokens (default from config, UTF-8)")
	convertCmd.Flags().IntVar(&convertMaxWords, "max-words", -1, "Read only the first N words (0 = all)")
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert an embedding table between file layouts",
	Long: `Convert an embedding table from one file layout to another.

The input is loaded completely, then written to the output path in the
requested layout. Converting binary to text rounds each value to six
decimal places; converting text to binary is exact.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	from, to := convertFrom, convertTo
	if from == "" {
		from = cfg.Format
	}
	if to == "" {
		to = cfg.Format
	}
	if from == to {
		return fmt.Errorf("input and output layouts are both %q; nothing to convert", from)
	}
	charsetName := convertCharset
	if charsetName == "" {
		charsetName = cfg.Charset
	}
	maxWords := convertMaxWords
	if maxWords < 0 {
		maxWords = cfg.MaxWords
	}

	tbl, err := loadTable(from, args[0], charsetName, maxWords)
	if err != nil {
		return err
	}
	if err := writeTable(to, args[1], tbl, charsetName); err != nil {
		return err
	}
	fmt.Printf("wrote %d words of dimension %d to %s\n", tbl.Rows(), tbl.Dim, args[1])
	return nil
}
