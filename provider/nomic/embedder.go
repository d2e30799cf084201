package nomic

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/tymeless/legacychat/errors"
)

type (
	TaskType string

	// Embedder is a thin HTTP client for the Nomic Atlas text embedding
	// API. It backs providers whose vendor offers no embedding endpoint.
	Embedder struct {
		client *http.Client
		apiKey string
	}
)

const (
	TaskTypeDocument TaskType = "search_document"
	TaskTypeQuery    TaskType = "search_query"

	TextEndpoint = "https://api-atlas.nomic.ai/v1/embedding/text"
	TextModel    = "nomic-embed-text-v1.5"

	// EmbedSize is the dimension of vectors produced by TextModel.
	EmbedSize = 768
)

func (t TaskType) String() string {
	return string(t)
}

func NewEmbedder(apiKey string) *Embedder {
	return &Embedder{client: http.DefaultClient, apiKey: apiKey}
}

func (e *Embedder) EmbedTexts(ctx context.Context, taskType TaskType, texts ...string) ([][]float32, error) {
	var requestBody bytes.Buffer
	if err := json.NewEncoder(&requestBody).Encode(struct {
		TaskType string   `json:"task_type"`
		Model    string   `json:"model"`
		Texts    []string `json:"texts"`
	}{
		TaskType: taskType.String(),
		Model:    TextModel,
		Texts:    texts,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, TextEndpoint, &requestBody)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to embed text: HTTP %d", resp.StatusCode)
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrapf(err, "failed to decode response")
	}

	if len(response.Embeddings) != len(texts) {
		return nil, errors.Errorf("expected %d embeddings, got %d", len(texts), len(response.Embeddings))
	}

	return response.Embeddings, nil
}
