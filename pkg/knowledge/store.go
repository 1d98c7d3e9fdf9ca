package knowledge

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/config"
)

const (
	storeName      = "knowledge_store"
	collectionName = "tour_knowledge"

	contextStartMarker = "--- START KNOWLEDGE BASE CONTEXT ---"
	contextEndMarker   = "--- END KNOWLEDGE BASE CONTEXT ---"

	maxChunkSize = 500
	// results below this similarity are treated as noise
	minSimilarity = 0.3
)

// Store is a persistent vector index over the local knowledge directory.
// Embeddings go through the same OpenAI-compatible endpoint as chat.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection

	mu    sync.RWMutex
	ready bool
	docs  int
}

var (
	instance *Store
	once     sync.Once
)

// GetInstance returns the shared store. An unreachable embedding endpoint
// or empty knowledge directory leaves the store not ready; queries then
// return no context and the bot answers from the model alone.
func GetInstance() *Store {
	once.Do(func() {
		instance = &Store{}
		if err := instance.init(); err != nil {
			log.Warnf("%s init failed, continuing without retrieval: %v", storeName, err)
		}
	})
	return instance
}

func (s *Store) init() error {
	cfg := config.GetInstance()

	db, err := chromem.NewPersistentDB(cfg.GetString(config.KnowledgeDBPath), false)
	if err != nil {
		return errors.Wrap(err, "open knowledge db")
	}

	normalized := true
	embeddingFunc := chromem.NewEmbeddingFuncOpenAICompat(
		cfg.GetString(config.LLMBaseURL),
		cfg.GetString(config.GeminiAPIKey),
		cfg.GetString(config.EmbeddingModel),
		&normalized,
	)

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return errors.Wrap(err, "open knowledge collection")
	}

	s.mu.Lock()
	s.db = db
	s.collection = collection
	s.ready = true
	s.docs = collection.Count()
	s.mu.Unlock()

	log.Infof("%s opened collection %s with %d chunks", storeName, collectionName, collection.Count())
	return nil
}

// BuildFromDir indexes every supported file under dir. Every chunk is
// re-embedded on each build; chunk IDs are stable (file name + index), so
// a rebuild overwrites prior entries instead of duplicating them.
func (s *Store) BuildFromDir(ctx context.Context, dir string) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if !ready {
		return errors.New("knowledge store not initialized")
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Warnf("%s knowledge dir %s does not exist, skipping index", storeName, dir)
		return nil
	}

	var docs []chromem.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("%s cannot read %s: %v", storeName, path, err)
			return nil
		}

		for i, chunk := range chunkText(string(raw), maxChunkSize) {
			docs = append(docs, chromem.Document{
				ID:      fmt.Sprintf("%s#%d", d.Name(), i),
				Content: chunk,
				Metadata: map[string]string{
					"file_name":   d.Name(),
					"chunk_index": fmt.Sprintf("%d", i),
				},
			})
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "walk knowledge dir")
	}

	if len(docs) == 0 {
		log.Warnf("%s no documents found under %s", storeName, dir)
		return nil
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return errors.Wrap(err, "embed knowledge documents")
	}

	s.mu.Lock()
	s.docs = s.collection.Count()
	s.mu.Unlock()

	log.Infof("%s indexed %d chunks from %s", storeName, len(docs), dir)
	return nil
}

// Result is one retrieved chunk with its similarity score.
type Result struct {
	Content    string
	Source     string
	Similarity float32
}

// Query returns up to topK chunks relevant to the question, best first.
func (s *Store) Query(ctx context.Context, question string, topK int) ([]Result, error) {
	s.mu.RLock()
	ready := s.ready
	count := s.docs
	s.mu.RUnlock()
	if !ready {
		return nil, errors.New("knowledge store not initialized")
	}
	if count == 0 {
		return nil, nil
	}

	if topK <= 0 {
		topK = config.GetInstance().GetInt(config.RagTopK)
	}
	if topK > count {
		topK = count
	}

	hits, err := s.collection.Query(ctx, question, topK, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "query knowledge collection")
	}

	var results []Result
	for _, hit := range hits {
		if hit.Similarity < minSimilarity {
			continue
		}
		results = append(results, Result{
			Content:    hit.Content,
			Source:     hit.Metadata["file_name"],
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}

// FormatContext renders retrieved chunks as a grounding block for the
// system prompt. Empty results yield an empty string.
func FormatContext(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(contextStartMarker)
	b.WriteString("\n")
	for i, r := range results {
		b.WriteString(fmt.Sprintf("[%d] (source: %s)\n%s\n", i+1, r.Source, strings.TrimSpace(r.Content)))
	}
	b.WriteString(contextEndMarker)
	b.WriteString("\n")
	b.WriteString("Based **only** on the above retrieved context, answer the user's question. If the context does not contain the answer, say so instead of inventing details.")
	return b.String()
}

func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return 0
	}
	return s.collection.Count()
}

// chunkText splits text on blank lines, then packs paragraphs into chunks
// of at most maxSize characters. Oversized paragraphs become their own chunk.
func chunkText(text string, maxSize int) []string {
	paragraphs := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")

	var chunks []string
	var current strings.Builder
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > maxSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(p)
		current.WriteString("\n")
	}
	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
