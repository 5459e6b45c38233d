package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// SQLiteStore is the reference Store implementation for single-node
// deployments. JSON columns keep the schema stable while the citation and
// analysis shapes evolve.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	id            TEXT PRIMARY KEY,
	org_id        TEXT NOT NULL,
	provider      TEXT NOT NULL,
	prompt_text   TEXT NOT NULL DEFAULT '',
	response_text TEXT NOT NULL,
	raw_payload   BLOB,
	citations     TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_org ON responses(org_id);

CREATE TABLE IF NOT EXISTS catalogs (
	org_id  TEXT PRIMARY KEY,
	entries TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	response_id TEXT NOT NULL,
	analyzed_at TIMESTAMP NOT NULL,
	bundle      TEXT NOT NULL,
	PRIMARY KEY (response_id, analyzed_at)
);
`

// NewSQLiteStore opens (and if needed initializes) a database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY churn under the worker's write-backs
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveResponse persists one assistant response
func (s *SQLiteStore) SaveResponse(ctx context.Context, resp model.StoredResponse) error {
	citations, err := json.Marshal(resp.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}

	createdAt := resp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO responses
			(id, org_id, provider, prompt_text, response_text, raw_payload, citations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		resp.ID, resp.OrgID, resp.Provider, resp.PromptText, resp.ResponseText,
		resp.RawPayload, string(citations), createdAt)
	if err != nil {
		return fmt.Errorf("save response: %w", err)
	}
	return nil
}

// GetResponse loads one stored response by id
func (s *SQLiteStore) GetResponse(ctx context.Context, id string) (model.StoredResponse, error) {
	var resp model.StoredResponse
	var citations string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, provider, prompt_text, response_text, raw_payload, citations, created_at
		FROM responses WHERE id = ?`, id).
		Scan(&resp.ID, &resp.OrgID, &resp.Provider, &resp.PromptText,
			&resp.ResponseText, &resp.RawPayload, &citations, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StoredResponse{}, ErrNotFound
	}
	if err != nil {
		return model.StoredResponse{}, fmt.Errorf("get response: %w", err)
	}

	if err := json.Unmarshal([]byte(citations), &resp.Citations); err != nil {
		return model.StoredResponse{}, fmt.Errorf("unmarshal citations: %w", err)
	}
	return resp, nil
}

// UpdateCitations writes back the enriched citation list
func (s *SQLiteStore) UpdateCitations(ctx context.Context, responseID string, citations []model.Citation) error {
	data, err := json.Marshal(citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE responses SET citations = ? WHERE id = ?`, string(data), responseID)
	if err != nil {
		return fmt.Errorf("update citations: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCatalog loads an organization's brand catalog
func (s *SQLiteStore) GetCatalog(ctx context.Context, orgID string) (model.Catalog, error) {
	var entries string
	err := s.db.QueryRowContext(ctx,
		`SELECT entries FROM catalogs WHERE org_id = ?`, orgID).Scan(&entries)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	var catalog model.Catalog
	if err := json.Unmarshal([]byte(entries), &catalog); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return catalog, nil
}

// SaveCatalog replaces an organization's brand catalog
func (s *SQLiteStore) SaveCatalog(ctx context.Context, orgID string, catalog model.Catalog) error {
	entries, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO catalogs (org_id, entries) VALUES (?, ?)`,
		orgID, string(entries))
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// SaveAnalysis persists a completed analysis bundle
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis model.Analysis) error {
	bundle, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	analyzedAt := analysis.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (response_id, analyzed_at, bundle) VALUES (?, ?, ?)`,
		analysis.ResponseID, analyzedAt, string(bundle))
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
