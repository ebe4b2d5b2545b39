package hand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/handtracker/internal/types"
)

const defaultIndexPrefix = "handtracker"

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// ElasticsearchRepository stores hands in a base repository and indexes a
// summary of each one for player search
type ElasticsearchRepository struct {
	baseRepo  Repository
	client    *elasticsearch.Client
	handIndex string
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = defaultIndexPrefix
	}

	repo := &ElasticsearchRepository{
		baseRepo:  baseRepo,
		client:    client,
		handIndex: prefix + "_hands",
	}

	if err := repo.initIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndex creates the hand index if it doesn't exist
func (r *ElasticsearchRepository) initIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.handIndex}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if hand index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != 404 {
		return nil
	}

	handMapping := `{
		"mappings": {
			"properties": {
				"hand_id": { "type": "long" },
				"played_at": { "type": "date" },
				"table_name": { "type": "keyword" },
				"table_size": { "type": "integer" },
				"real_money": { "type": "boolean" },
				"pot": { "type": "float" },
				"winner": { "type": "keyword" },
				"players": { "type": "keyword" },
				"board": { "type": "keyword" },
				"actions": { "type": "integer" },
				"shown_players": { "type": "keyword" }
			}
		}
	}`

	req := esapi.IndicesCreateRequest{
		Index: r.handIndex,
		Body:  bytes.NewReader([]byte(handMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating hand index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating hand index: %s", res.String())
	}
	return nil
}

// SaveHand stores the hand in the base repository, then indexes its summary.
// A hand the base repository already holds is indexed again before the
// DUPLICATE_HAND error is returned, so a summary lost to an earlier index
// failure is restored. Other base failures are never indexed.
func (r *ElasticsearchRepository) SaveHand(ctx context.Context, records *Records) error {
	if err := r.baseRepo.SaveHand(ctx, records); err != nil {
		if !types.IsHandError(err, types.ErrDuplicateHand) {
			return err
		}
		if indexErr := r.IndexHand(ctx, records); indexErr != nil {
			return indexErr
		}
		return err
	}
	return r.IndexHand(ctx, records)
}

// IndexHand writes the summary document of a hand, keyed by hand ID
func (r *ElasticsearchRepository) IndexHand(ctx context.Context, records *Records) error {
	id := records.Hand.ID

	jsonData, err := json.Marshal(NewESHandSummary(records))
	if err != nil {
		return types.WrapError(types.ErrIndexError, "marshal hand summary", err).ForHand(id)
	}

	res, err := r.client.Index(
		r.handIndex,
		bytes.NewReader(jsonData),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(strconv.FormatInt(id, 10)),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return types.WrapError(types.ErrIndexError, "index hand summary", err).ForHand(id)
	}
	defer res.Body.Close()

	if res.IsError() {
		return types.NewHandError(types.ErrIndexError, "index hand summary: "+res.String()).ForHand(id)
	}
	return nil
}

// SearchByPlayer returns up to limit summaries of hands the player sat in,
// newest first
func (r *ElasticsearchRepository) SearchByPlayer(ctx context.Context, name string, limit int) ([]*ESHandSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"players": name},
		},
		"sort": []interface{}{
			map[string]interface{}{"played_at": map[string]string{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, types.WrapError(types.ErrIndexError, "build player query", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.handIndex),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, types.WrapError(types.ErrIndexError, "search hands by player", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, types.NewHandError(types.ErrIndexError, "search hands by player: "+res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source ESHandSummary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, types.WrapError(types.ErrIndexError, "parse search response", err)
	}

	summaries := make([]*ESHandSummary, 0, len(result.Hits.Hits))
	for i := range result.Hits.Hits {
		summaries = append(summaries, &result.Hits.Hits[i].Source)
	}
	return summaries, nil
}

// HasHand reports a hand as stored only when the base repository holds it
// and its summary is in the index
func (r *ElasticsearchRepository) HasHand(ctx context.Context, id int64) (bool, error) {
	exists, err := r.baseRepo.HasHand(ctx, id)
	if err != nil || !exists {
		return exists, err
	}
	return r.isIndexed(ctx, id)
}

func (r *ElasticsearchRepository) isIndexed(ctx context.Context, id int64) (bool, error) {
	res, err := r.client.Exists(r.handIndex, strconv.FormatInt(id, 10), r.client.Exists.WithContext(ctx))
	if err != nil {
		return false, types.WrapError(types.ErrIndexError, "check hand summary", err).ForHand(id)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case 200:
		return true, nil
	case 404:
		return false, nil
	default:
		return false, types.NewHandError(types.ErrIndexError, "check hand summary: "+res.String()).ForHand(id)
	}
}

// GetHand delegates to the base repository
func (r *ElasticsearchRepository) GetHand(ctx context.Context, id int64) (*Records, error) {
	return r.baseRepo.GetHand(ctx, id)
}

// ListHands delegates to the base repository
func (r *ElasticsearchRepository) ListHands(ctx context.Context, limit int) ([]*Hand, error) {
	return r.baseRepo.ListHands(ctx, limit)
}

// SaveBatch delegates to the base repository
func (r *ElasticsearchRepository) SaveBatch(ctx context.Context, batch *Batch) error {
	return r.baseRepo.SaveBatch(ctx, batch)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
