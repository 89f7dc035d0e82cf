package importer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/bulk"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/jobs"
	"github.com/orderhub/backend/internal/infrastructure/pricelist"
)

// ImportService runs asynchronous price-list imports for suppliers.
// StartImport returns as soon as the run is recorded; the fetch, parse and
// catalog replacement happen on the background job queue, and the history
// record is the only place the outcome is visible.
type ImportService struct {
	fetcher     *pricelist.Fetcher
	parser      *pricelist.Parser
	importRepo  catalog.ImportRepository
	historyRepo bulk.ImportHistoryRepository
	queue       jobs.Enqueuer
	logger      *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(
	fetcher *pricelist.Fetcher,
	parser *pricelist.Parser,
	importRepo catalog.ImportRepository,
	historyRepo bulk.ImportHistoryRepository,
	queue jobs.Enqueuer,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		fetcher:     fetcher,
		parser:      parser,
		importRepo:  importRepo,
		historyRepo: historyRepo,
		queue:       queue,
		logger:      logger,
	}
}

// ImportRunDTO is the transport form of one import run
type ImportRunDTO struct {
	ID                uuid.UUID         `json:"id"`
	SourceURL         string            `json:"source_url"`
	Status            bulk.ImportStatus `json:"status"`
	CategoriesCreated int               `json:"categories_created"`
	ProductsCreated   int               `json:"products_created"`
	ListingsCreated   int               `json:"listings_created"`
	Error             string            `json:"error,omitempty"`
}

func toImportRunDTO(h *bulk.ImportHistory) ImportRunDTO {
	return ImportRunDTO{
		ID:                h.ID,
		SourceURL:         h.SourceURL,
		Status:            h.Status,
		CategoriesCreated: h.CategoriesCreated,
		ProductsCreated:   h.ProductsCreated,
		ListingsCreated:   h.ListingsCreated,
		Error:             h.Error,
	}
}

// StartImport records a pending run and schedules it on the job queue
func (s *ImportService) StartImport(ctx context.Context, userID uuid.UUID, sourceURL string) (*ImportRunDTO, error) {
	history, err := bulk.NewImportHistory(userID, sourceURL)
	if err != nil {
		return nil, err
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		s.logger.Error("Failed to record import run", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start import")
	}

	historyID := history.ID
	job := jobs.NewJob("price-list-import", func(jobCtx context.Context) error {
		s.runImport(jobCtx, historyID, userID, sourceURL)
		return nil
	})
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Error("Failed to enqueue import job", zap.Error(err))
		if failErr := history.Fail("import queue unavailable"); failErr == nil {
			if saveErr := s.historyRepo.Save(ctx, history); saveErr != nil {
				s.logger.Error("Failed to record queue failure", zap.Error(saveErr))
			}
		}
		return nil, shared.NewDomainError("IMPORT_UNAVAILABLE", "Import queue is unavailable, try again later")
	}

	dto := toImportRunDTO(history)
	return &dto, nil
}

// GetImport returns one of the user's import runs
func (s *ImportService) GetImport(ctx context.Context, userID, importID uuid.UUID) (*ImportRunDTO, error) {
	history, err := s.historyRepo.FindByID(ctx, importID)
	if err != nil {
		return nil, err
	}
	if history.UserID != userID {
		return nil, shared.ErrNotFound
	}
	dto := toImportRunDTO(history)
	return &dto, nil
}

// ListImports returns the user's import runs, newest first
func (s *ImportService) ListImports(ctx context.Context, userID uuid.UUID, limit int) ([]ImportRunDTO, error) {
	histories, err := s.historyRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ImportRunDTO, 0, len(histories))
	for i := range histories {
		dtos = append(dtos, toImportRunDTO(&histories[i]))
	}
	return dtos, nil
}

// runImport executes one import run end to end. Failures are recorded on
// the history record, never returned, so the job queue does not retry a
// run whose document is simply malformed.
func (s *ImportService) runImport(ctx context.Context, historyID, userID uuid.UUID, sourceURL string) {
	log := s.logger.With(
		zap.String("import_id", historyID.String()),
		zap.String("user_id", userID.String()),
	)

	history, err := s.historyRepo.FindByID(ctx, historyID)
	if err != nil {
		log.Error("Failed to load import run", zap.Error(err))
		return
	}
	if err := history.Start(); err != nil {
		log.Warn("Import run not startable", zap.Error(err))
		return
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		log.Error("Failed to mark import as running", zap.Error(err))
		return
	}

	stats, runErr := s.execute(ctx, userID, sourceURL)
	if runErr != nil {
		log.Warn("Import run failed", zap.Error(runErr))
		if err := history.Fail(runErr.Error()); err != nil {
			log.Error("Failed to mark import as failed", zap.Error(err))
			return
		}
		if err := s.historyRepo.Save(ctx, history); err != nil {
			log.Error("Failed to record import failure", zap.Error(err))
		}
		return
	}

	if err := history.Complete(stats.CategoriesCreated, stats.ProductsCreated, stats.ListingsCreated); err != nil {
		log.Error("Failed to mark import as completed", zap.Error(err))
		return
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		log.Error("Failed to record import result", zap.Error(err))
		return
	}

	log.Info("Import run completed",
		zap.Int("categories_created", stats.CategoriesCreated),
		zap.Int("products_created", stats.ProductsCreated),
		zap.Int("listings_created", stats.ListingsCreated))
}

func (s *ImportService) execute(ctx context.Context, userID uuid.UUID, sourceURL string) (*catalog.ImportStats, error) {
	data, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	doc, err := s.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return s.importRepo.ReplaceShopCatalog(ctx, userID, doc)
}
