package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/api"
	"github.com/insightdelivered/statement-ingest/internal/extractor"
	"github.com/insightdelivered/statement-ingest/internal/ingest"
	"github.com/insightdelivered/statement-ingest/internal/models"
	"github.com/insightdelivered/statement-ingest/internal/writer"
)

const version = "1.0.0"

func main() {
	bankFlag := flag.String("bank", "", "Bank: td, rbc, cibc, bmo, scotiabank (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV")
	skipDupFlag := flag.Bool("skip-duplicate-check", false, "Reprocess files even if already imported in this run")
	serveFlag := flag.String("serve", "", "Run the HTTP API on the given address (e.g. :8080) instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Ingest
by Insight Delivered

Normalizes bank and credit-card statements (PDF or CSV) from TD, RBC,
CIBC, BMO and Scotiabank into clean transaction records, with a generic
fallback for unrecognized formats.

Usage:
  statement-ingest [flags] <statement.pdf|statement.csv> [more files ...]
  statement-ingest --serve :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement to CSV next to the input
  statement-ingest january.pdf

  # Custom output path
  statement-ingest --output=transactions.csv january.pdf

  # Skip bank auto-detection
  statement-ingest --bank=rbc january.pdf

  # Re-import a file that was already processed
  statement-ingest --skip-duplicate-check january.pdf

  # Run the upload API
  statement-ingest --serve :8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-ingest v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag != "" {
		app := api.NewApp()
		fmt.Printf("Listening on %s\n", *serveFlag)
		if err := app.Listen(*serveFlag); err != nil {
			fatalf("server error: %v\n", err)
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	forceBank, err := resolveBankFlag(*bankFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	known := make(map[string]bool)
	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *outputFlag, *headerFlag, *skipDupFlag, forceBank, known); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func resolveBankFlag(name string) (models.BankID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "td":
		return models.BankTD, nil
	case "rbc":
		return models.BankRBC, nil
	case "cibc":
		return models.BankCIBC, nil
	case "bmo":
		return models.BankBMO, nil
	case "scotiabank", "scotia":
		return models.BankScotia, nil
	default:
		return "", fmt.Errorf("unknown bank %q (supported: td, rbc, cibc, bmo, scotiabank)", name)
	}
}

func processFile(inputPath, outputPath string, includeHeader, skipDup bool, forceBank models.BankID, known map[string]bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	result, err := ingest.Process(
		ingest.Document{Filename: inputPath, Data: data},
		ingest.Options{SkipDuplicateCheck: skipDup, KnownHashes: known, ForceBank: forceBank},
	)
	if err != nil {
		switch {
		case errors.Is(err, extractor.ErrImagePDF):
			return fmt.Errorf("file appears to be a scanned image; only text statements are supported")
		case errors.Is(err, ingest.ErrDuplicateFile):
			return fmt.Errorf("already imported in this run (use --skip-duplicate-check to force)")
		default:
			return err
		}
	}
	known[ingest.HashText(result.RawText)] = true

	fmt.Printf("  Bank: %s\n", result.BankDisplayName)
	fmt.Printf("  Found %d transaction(s), confidence %.2f\n", len(result.Transactions), result.Confidence)
	if len(result.Transactions) == 0 {
		fmt.Println("  Warning: no transactions extracted. The statement layout may not match any known grammar.")
	} else if result.Confidence < 0.6 {
		fmt.Println("  Warning: low confidence; review the output before importing.")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, result); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	if result.Metadata.AccountHolder != "" {
		fmt.Printf("  Account holder: %s\n", result.Metadata.AccountHolder)
	}
	if result.Metadata.AccountNumber != "" {
		fmt.Printf("  Account number: %s\n", result.Metadata.AccountNumber)
	}
	if result.Metadata.StatementPeriod != "" {
		fmt.Printf("  Period: %s\n", result.Metadata.StatementPeriod)
	}
	fmt.Println("  Done.")
	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
