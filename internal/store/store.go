package store

import (
	"context"
	"errors"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// ErrNotFound is returned when a response or catalog does not exist
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary between the engine and whatever
// backs it. The engine itself never reaches past this interface.
type Store interface {
	// SaveResponse persists one assistant response for later analysis
	SaveResponse(ctx context.Context, resp model.StoredResponse) error

	// GetResponse loads one stored response by id
	GetResponse(ctx context.Context, id string) (model.StoredResponse, error)

	// UpdateCitations writes back the enriched citation list for a response.
	// This is the citation mention worker's only side effect.
	UpdateCitations(ctx context.Context, responseID string, citations []model.Citation) error

	// GetCatalog loads an organization's brand catalog
	GetCatalog(ctx context.Context, orgID string) (model.Catalog, error)

	// SaveCatalog replaces an organization's brand catalog
	SaveCatalog(ctx context.Context, orgID string, catalog model.Catalog) error

	// SaveAnalysis persists a completed analysis bundle
	SaveAnalysis(ctx context.Context, analysis model.Analysis) error

	// Close releases the underlying resources
	Close() error
}
