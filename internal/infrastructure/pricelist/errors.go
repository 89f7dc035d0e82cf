package pricelist

import "github.com/orderhub/backend/internal/domain/shared"

// Errors surfaced to import callers. Both carry stable codes so the HTTP
// layer can map them without string matching.
var (
	ErrFetchFailed      = shared.NewDomainError("FETCH_FAILED", "Price list could not be fetched from the source URL")
	ErrMalformedCatalog = shared.NewDomainError("MALFORMED_CATALOG", "Price list document is malformed")
)
