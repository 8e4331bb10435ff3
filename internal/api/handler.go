package api

import (
	"errors"
	"io"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/insightdelivered/statement-ingest/internal/extractor"
	"github.com/insightdelivered/statement-ingest/internal/ingest"
	"github.com/insightdelivered/statement-ingest/internal/models"
)

const version = "1.0.0"

// IngestResponse is the JSON body returned by POST /api/ingest.
type IngestResponse struct {
	Success      bool                      `json:"success"`
	ImportID     string                    `json:"importId,omitempty"`
	Error        string                    `json:"error,omitempty"`
	ErrorKind    string                    `json:"errorKind,omitempty"`
	Bank         string                    `json:"bank,omitempty"`
	Transactions []models.Transaction      `json:"transactions"`
	Metadata     *models.StatementMetadata `json:"metadata,omitempty"`
	Confidence   float64                   `json:"confidence"`
	TotalDebit   float64                   `json:"totalDebit"`
	TotalCredit  float64                   `json:"totalCredit"`
	Count        int                       `json:"count"`
}

// Handler owns the HTTP surface plus the seen-hash registry. The
// registry stands in for whatever the embedding application persists;
// the pipeline itself only ever sees a plain hash set.
type Handler struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewHandler() *Handler {
	return &Handler{seen: make(map[string]bool)}
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // statement PDFs run a few MB at most
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	h := NewHandler()
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/ingest", h.HandleIngest)
	return app
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleIngest accepts a multipart statement upload and returns the parse
// result. Form fields: "file" (required), "skipDuplicateCheck"
// ("true"/"1" to force reprocessing of an already-imported file).
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'", "")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not open upload: "+err.Error(), "")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "could not read upload: "+err.Error(), "")
	}

	skip := c.FormValue("skipDuplicateCheck")
	opts := ingest.Options{
		SkipDuplicateCheck: skip == "true" || skip == "1",
		KnownHashes:        h.knownHashes(),
	}

	result, err := ingest.Process(ingest.Document{Filename: fileHeader.Filename, Data: data}, opts)
	if err != nil {
		switch {
		case errors.Is(err, extractor.ErrImagePDF):
			return writeError(c, fiber.StatusUnprocessableEntity,
				"this file appears to be a scanned image; text statements only", "IMAGE_PDF")
		case errors.Is(err, ingest.ErrDuplicateFile):
			return writeError(c, fiber.StatusConflict,
				"this file has already been imported", "DUPLICATE_FILE")
		default:
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error(), "")
		}
	}

	h.remember(ingest.HashText(result.RawText))

	resp := IngestResponse{
		Success:      true,
		ImportID:     uuid.NewString(),
		Bank:         result.BankDisplayName,
		Transactions: result.Transactions,
		Metadata:     &result.Metadata,
		Confidence:   result.Confidence,
		Count:        len(result.Transactions),
	}
	for _, t := range result.Transactions {
		if t.Type == models.Credit {
			resp.TotalCredit += t.Amount
		} else {
			resp.TotalDebit += t.Amount
		}
	}
	return c.JSON(resp)
}

func (h *Handler) knownHashes() map[string]bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]bool, len(h.seen))
	for k := range h.seen {
		out[k] = true
	}
	return out
}

func (h *Handler) remember(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[hash] = true
}

func writeError(c *fiber.Ctx, status int, msg, kind string) error {
	return c.Status(status).JSON(IngestResponse{
		Success:      false,
		Error:        msg,
		ErrorKind:    kind,
		Transactions: []models.Transaction{},
	})
}
