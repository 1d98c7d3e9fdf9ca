package agent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/pkg/knowledge"
)

const ToolNameKnowledgeRetriever = "knowledge_retriever"

// KnowledgeRetrieverTool exposes semantic search over the knowledge base.
// The description tells the model when to reach for it.
type KnowledgeRetrieverTool struct {
	store *knowledge.Store
}

type knowledgeRetrieverParams struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func NewKnowledgeRetrieverTool(store *knowledge.Store) *KnowledgeRetrieverTool {
	return &KnowledgeRetrieverTool{store: store}
}

func (t *KnowledgeRetrieverTool) Name() string {
	return ToolNameKnowledgeRetriever
}

func (t *KnowledgeRetrieverTool) Description() string {
	return "Retrieve information from the knowledge base using semantic search. " +
		"Use this for factual questions about the platform, destinations, tours, or services. " +
		"Do not use it for greetings or casual conversation. " +
		"Always prefer this tool over training data for factual questions."
}

func (t *KnowledgeRetrieverTool) ArgumentsJson() string {
	return `{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "the user's question or search query"},
			"top_k": {"type": "integer", "description": "number of passages to retrieve, optional"}
		},
		"required": ["query"]
	}`
}

func (t *KnowledgeRetrieverTool) Execute(ctx context.Context, argsJson string) (string, error) {
	var params knowledgeRetrieverParams
	if err := json.Unmarshal([]byte(argsJson), &params); err != nil {
		return "", errors.Wrap(err, "decode knowledge retriever arguments")
	}
	if strings.TrimSpace(params.Query) == "" {
		return "", errors.New("query is required")
	}

	if t.store == nil || !t.store.IsReady() {
		return "Knowledge base is not available. Please ensure the knowledge index is built.", nil
	}

	topK := params.TopK
	if topK <= 0 {
		topK = config.GetInstance().GetInt(config.RagTopK)
	}

	results, err := t.store.Query(ctx, params.Query, topK)
	if err != nil {
		return "", errors.Wrap(err, "query knowledge base")
	}

	if len(results) == 0 {
		return "No relevant information found in the knowledge base for this query.", nil
	}
	return knowledge.FormatContext(results), nil
}
