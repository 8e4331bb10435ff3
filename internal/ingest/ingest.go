// Package ingest wires the statement pipeline together: text extraction,
// duplicate guarding, classification, bank-specific parsing, metadata
// extraction and confidence scoring. Each call is self-contained; no
// state survives between invocations.
package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/insightdelivered/statement-ingest/internal/extractor"
	"github.com/insightdelivered/statement-ingest/internal/models"
	"github.com/insightdelivered/statement-ingest/internal/parser"
)

// ErrDuplicateFile is returned when a document's content hash is already
// in the caller's known set. Recoverable: re-run with SkipDuplicateCheck.
var ErrDuplicateFile = errors.New("this file has already been imported")

// Document is one statement file as received from the caller.
type Document struct {
	Filename string
	Data     []byte
}

// Options configures a single pipeline invocation. The zero value is
// usable: duplicate checking on (against an empty set), default epsilon,
// current date for year detection.
type Options struct {
	// SkipDuplicateCheck forces reprocessing of an already-seen file
	// (bulk-import mode, or the user confirming "import anyway").
	SkipDuplicateCheck bool
	// KnownHashes is the set of content hashes already ingested,
	// supplied by whatever stores them.
	KnownHashes map[string]bool
	// Epsilon overrides the balance-delta tolerance. Zero means default.
	Epsilon float64
	// ForceBank overrides bank detection with a known bank id.
	ForceBank models.BankID
	// ReferenceDate anchors statement-year detection when the text
	// carries no year. Zero means now.
	ReferenceDate time.Time
}

// Process runs the full pipeline on one document.
//
// Extraction failures (extractor.ErrImagePDF) and duplicate hits abort
// the parse and surface to the caller. Per-line trouble never does: a bad
// date keeps its raw fragment, an ambiguous delta falls back to keywords,
// and zero extracted transactions is a valid low-confidence result.
func Process(doc Document, opts Options) (*models.ParseResult, error) {
	text, err := extractor.Load(doc.Filename, doc.Data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", doc.Filename, err)
	}

	if !opts.SkipDuplicateCheck {
		if IsDuplicate(HashText(text), opts.KnownHashes) {
			return nil, fmt.Errorf("%s: %w", doc.Filename, ErrDuplicateFile)
		}
	}

	classification := parser.Classify(text)
	if opts.ForceBank != "" {
		classification.BankID = opts.ForceBank
	}

	ref := opts.ReferenceDate
	if ref.IsZero() {
		ref = time.Now()
	}
	cfg := parser.Config{
		Year:    parser.DetectYear(text, ref.Year()),
		Epsilon: opts.Epsilon,
	}

	strategy := parser.ForClassification(classification, text, cfg)
	out, err := strategy.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", doc.Filename, err)
	}

	metadata := parser.ExtractMetadata(text, classification.BankID, classification.StatementType)
	// Balances scraped during parsing fill metadata gaps, not the other
	// way round: the parser saw the actual summary lines.
	if metadata.PreviousBalance == nil && out.OpeningBalance != nil {
		metadata.PreviousBalance = out.OpeningBalance
	}
	if metadata.NewBalance == nil && out.ClosingBalance != nil {
		metadata.NewBalance = out.ClosingBalance
	}

	return &models.ParseResult{
		BankDisplayName: strategy.BankName(),
		Transactions:    out.Transactions,
		Metadata:        metadata,
		Confidence:      parser.ConfidenceScore(out.Transactions),
		RawText:         text,
	}, nil
}
