package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"boletapos/internal/infra"
	"boletapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BoletaPDFWorker renders the printable ticket for a committed boleta.
// Rendering is deliberately out-of-band: a PDF failure must never make the
// sale itself fail, so the sale path only enqueues and moves on.
type BoletaPDFWorker struct {
	boletaRepo  repository.BoletaRepository
	storagePath string
}

func NewBoletaPDFWorker(boletaRepo repository.BoletaRepository, storagePath string) *BoletaPDFWorker {
	return &BoletaPDFWorker{boletaRepo: boletaRepo, storagePath: storagePath}
}

func (w *BoletaPDFWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p BoletaPDFPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("boleta_pdf: bad payload: %w", err)
	}
	id, err := uuid.Parse(p.BoletaID)
	if err != nil {
		return fmt.Errorf("boleta_pdf: bad boleta_id %q: %w", p.BoletaID, err)
	}

	boleta, err := w.boletaRepo.FindByID(ctx, id)
	if err != nil {
		// Boleta may have been voided between enqueue and processing.
		return fmt.Errorf("boleta_pdf: boleta %s: %w", id, err)
	}

	path, err := infra.GenerateBoletaPDF(boleta, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("boleta_id", id.String()).Str("path", path).Msg("boleta PDF generated")
	return nil
}
