package knowledge

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
)

const DefaultTopK = 3

type Option func(*Retriever)

// WithCategories 替换知识类别列表
func WithCategories(categories ...Category) Option {
	return func(r *Retriever) {
		r.categories = categories
	}
}

func WithTopK(topK int) Option {
	return func(r *Retriever) {
		if topK > 0 {
			r.topK = topK
		}
	}
}

// WithChunking 加载时按 chunkSize 切分文档，chunkSize<=0 表示不切分
func WithChunking(chunkSize, overlap int) Option {
	return func(r *Retriever) {
		r.chunkSize = chunkSize
		r.chunkOverlap = overlap
	}
}

// Retriever 基于关键词重合度的知识库检索
type Retriever struct {
	categories   []Category
	topK         int
	chunkSize    int
	chunkOverlap int

	mu   sync.RWMutex
	docs map[string][]*schema.Document
}

var _ retriever.Retriever = (*Retriever)(nil)

func NewRetriever(opts ...Option) *Retriever {
	r := &Retriever{
		categories: DefaultCategories,
		topK:       DefaultTopK,
		docs:       make(map[string][]*schema.Document),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retriever) description(category string) string {
	for _, c := range r.categories {
		if c.Name == category {
			return c.Description
		}
	}
	return ""
}

// AddDocuments 向类别追加文档，补全类别、描述元数据
func (r *Retriever) AddDocuments(category string, docs ...*schema.Document) error {
	if category == "" {
		return ErrEmptyCategory
	}
	desc := r.description(category)
	for _, doc := range docs {
		if doc.MetaData == nil {
			doc.MetaData = make(map[string]any)
		}
		doc.MetaData[MetaCategory] = category
		doc.MetaData[MetaDescription] = desc
		if _, ok := doc.MetaData[MetaSource]; !ok {
			doc.MetaData[MetaSource] = doc.ID
		}
	}

	r.mu.Lock()
	r.docs[category] = append(r.docs[category], docs...)
	r.mu.Unlock()
	return nil
}

// Categories 已加载文档的类别，按配置顺序
func (r *Retriever) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	seen := make(map[string]bool)
	for _, c := range r.categories {
		if len(r.docs[c.Name]) > 0 {
			out = append(out, c.Name)
			seen[c.Name] = true
		}
	}
	// 通过 AddDocuments 加入的未配置类别排在后面
	var extra []string
	for name, docs := range r.docs {
		if !seen[name] && len(docs) > 0 {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Documents 返回某一类别的全部文档
func (r *Retriever) Documents(category string) []*schema.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*schema.Document(nil), r.docs[category]...)
}

func (r *Retriever) DocumentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, docs := range r.docs {
		n += len(docs)
	}
	return n
}

// Search 返回得分大于0的前 topK 条结果，按得分降序，同分保持加载顺序
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]*Result, error) {
	return r.search(query, "", topK), nil
}

func (r *Retriever) search(query, category string, topK int) []*Result {
	if topK <= 0 {
		topK = r.topK
	}
	lowerQuery := strings.ToLower(query)

	r.mu.RLock()
	var results []*Result
	for _, cat := range r.searchOrder(category) {
		for _, doc := range r.docs[cat] {
			score := relevance(lowerQuery, doc.Content)
			if score <= 0 {
				continue
			}
			source, _ := doc.MetaData[MetaSource].(string)
			desc, _ := doc.MetaData[MetaDescription].(string)
			results = append(results, &Result{
				Content:     extractSection(doc.Content, query),
				Source:      source,
				Score:       score,
				Category:    cat,
				Description: desc,
			})
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// searchOrder 调用方需持有读锁
func (r *Retriever) searchOrder(category string) []string {
	if category != "" {
		return []string{category}
	}
	order := make([]string, 0, len(r.docs))
	seen := make(map[string]bool)
	for _, c := range r.categories {
		if _, ok := r.docs[c.Name]; ok {
			order = append(order, c.Name)
			seen[c.Name] = true
		}
	}
	var extra []string
	for name := range r.docs {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

type options struct {
	category string
}

// WithCategory 只在指定类别内检索
func WithCategory(category string) retriever.Option {
	return retriever.WrapImplSpecificOptFn(func(o *options) {
		o.category = category
	})
}

// Retrieve 实现retriever.Retriever接口
func (r *Retriever) Retrieve(ctx context.Context, query string, opts ...retriever.Option) ([]*schema.Document, error) {
	topK := r.topK
	common := retriever.GetCommonOptions(&retriever.Options{TopK: &topK}, opts...)
	implOpts := retriever.GetImplSpecificOptions(&options{}, opts...)

	ctx = callbacks.EnsureRunInfo(ctx, r.GetType(), components.ComponentOfRetriever)
	ctx = callbacks.OnStart(ctx, &retriever.CallbackInput{
		Query:          query,
		TopK:           *common.TopK,
		ScoreThreshold: common.ScoreThreshold,
		Extra:          map[string]any{MetaCategory: implOpts.category},
	})

	results := r.search(query, implOpts.category, *common.TopK)
	docs := make([]*schema.Document, 0, len(results))
	for _, res := range results {
		if common.ScoreThreshold != nil && res.Score < *common.ScoreThreshold {
			continue
		}
		doc := &schema.Document{
			ID:      res.Source,
			Content: res.Content,
			MetaData: map[string]any{
				MetaCategory:    res.Category,
				MetaDescription: res.Description,
				MetaSource:      res.Source,
			},
		}
		docs = append(docs, doc.WithScore(res.Score))
	}

	callbacks.OnEnd(ctx, &retriever.CallbackOutput{Docs: docs})
	return docs, nil
}

func (r *Retriever) GetType() string {
	return "KeywordRetriever"
}
