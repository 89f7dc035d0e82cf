package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/bulk"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/infrastructure/jobs"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/infrastructure/pricelist"
)

const validDoc = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Smartphone apple iphone xs max 512gb
    price: 110000
    price_rrc: 116990
    quantity: 14
`

// inlineEnqueuer runs jobs synchronously so tests observe the final state
type inlineEnqueuer struct{}

func (inlineEnqueuer) Enqueue(job *jobs.Job) error {
	return job.Run(context.Background())
}

type importFixture struct {
	svc         *ImportService
	listingRepo catalog.ListingRepository
	ownerID     uuid.UUID
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	db, err := persistence.NewSQLiteDatabase(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.Migrate(db.DB))
	t.Cleanup(func() { _ = db.Close() })

	owner, err := identity.NewUser("owner@example.com", "secret123pass", identity.UserTypeShop)
	require.NoError(t, err)
	owner.ClearDomainEvents()
	require.NoError(t, persistence.NewGormUserRepository(db.DB).Create(context.Background(), owner))

	svc := NewImportService(
		pricelist.NewFetcher(pricelist.FetcherConfig{}, zap.NewNop()),
		pricelist.NewParser(),
		persistence.NewGormImportRepository(db.DB),
		persistence.NewGormImportHistoryRepository(db.DB),
		inlineEnqueuer{},
		zap.NewNop(),
	)

	return &importFixture{
		svc:         svc,
		listingRepo: persistence.NewGormListingRepository(db.DB),
		ownerID:     owner.ID,
	}
}

func TestImportService_StartImport(t *testing.T) {
	f := newImportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	defer server.Close()

	run, err := f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)

	// The inline queue ran the job before StartImport returned
	final, err := f.svc.GetImport(context.Background(), f.ownerID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusCompleted, final.Status)
	assert.Equal(t, 1, final.CategoriesCreated)
	assert.Equal(t, 1, final.ProductsCreated)
	assert.Equal(t, 1, final.ListingsCreated)

	listings, err := f.listingRepo.Search(context.Background(), catalog.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestImportService_MalformedDocumentFailsRun(t *testing.T) {
	f := newImportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("shop: [broken"))
	}))
	defer server.Close()

	run, err := f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)

	final, err := f.svc.GetImport(context.Background(), f.ownerID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusFailed, final.Status)
	assert.NotEmpty(t, final.Error)
}

func TestImportService_FetchFailureFailsRun(t *testing.T) {
	f := newImportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	run, err := f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)

	final, err := f.svc.GetImport(context.Background(), f.ownerID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusFailed, final.Status)
}

func TestImportService_GetImportOtherUser(t *testing.T) {
	f := newImportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	defer server.Close()

	run, err := f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)

	_, err = f.svc.GetImport(context.Background(), uuid.New(), run.ID)
	assert.Error(t, err)
}

func TestImportService_ListImports(t *testing.T) {
	f := newImportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	defer server.Close()

	_, err := f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)
	_, err = f.svc.StartImport(context.Background(), f.ownerID, server.URL)
	require.NoError(t, err)

	runs, err := f.svc.ListImports(context.Background(), f.ownerID, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
