package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRelevance(t *testing.T) {
	assert.Equal(t, 0.0, relevance("", "内容"))
	assert.Equal(t, 0.0, relevance("   ", "内容"))
	assert.Equal(t, 1.0, relevance("焦虑 呼吸", "焦虑时可以做深呼吸"))
	assert.Equal(t, 0.5, relevance("焦虑 睡眠", "焦虑时可以做深呼吸"))
	assert.Equal(t, 1.0, relevance("CBT", "cbt 认知行为疗法"))
}

func TestExtractSection(t *testing.T) {
	short := "正念是一种觉察练习"
	assert.Equal(t, short, extractSection(short, "正念"))
	assert.Equal(t, short, extractSection(short, "无关"))

	long := strings.Repeat("甲", 300) + "目标" + strings.Repeat("乙", 600)
	section := extractSection(long, "目标")
	assert.True(t, strings.HasPrefix(section, "..."))
	assert.True(t, strings.HasSuffix(section, "..."))
	// 命中前250字加命中后500字
	body := strings.TrimSuffix(strings.TrimPrefix(section, "..."), "...")
	assert.Equal(t, 750, len([]rune(body)))

	noMatch := extractSection(long, "不存在")
	assert.Equal(t, 500, len([]rune(noMatch)))
}

func TestRetriever_Search(t *testing.T) {
	ctx := context.Background()
	r := NewRetriever()

	require.NoError(t, r.AddDocuments(CategoryPsychologyBasics,
		&schema.Document{ID: "a", Content: "焦虑是一种常见情绪"},
		&schema.Document{ID: "b", Content: "焦虑 与 睡眠 的关系"},
	))
	require.NoError(t, r.AddDocuments(CategoryTherapyTechniques,
		&schema.Document{ID: "c", Content: "深呼吸可以缓解焦虑"},
	))
	assert.ErrorIs(t, r.AddDocuments(""), ErrEmptyCategory)

	results, err := r.Search(ctx, "焦虑 睡眠", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].Source)
	assert.Equal(t, 1.0, results[0].Score)
	// 同分保持加载顺序
	assert.Equal(t, "a", results[1].Source)
	assert.Equal(t, "c", results[2].Source)
	assert.Equal(t, "心理治疗技术", results[2].Description)

	results, err = r.Search(ctx, "焦虑", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = r.Search(ctx, "毫无关系", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, []string{CategoryPsychologyBasics, CategoryTherapyTechniques}, r.Categories())
}

func TestRetriever_Retrieve(t *testing.T) {
	ctx := context.Background()
	r := NewRetriever(WithTopK(5))
	require.NoError(t, r.AddDocuments(CategoryPsychologyBasics, &schema.Document{ID: "a", Content: "焦虑 情绪"}))
	require.NoError(t, r.AddDocuments(CategoryChineseWisdom, &schema.Document{ID: "b", Content: "焦虑 中庸"}))

	docs, err := r.Retrieve(ctx, "焦虑 情绪")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, 1.0, docs[0].Score())
	assert.Equal(t, CategoryPsychologyBasics, docs[0].MetaData[MetaCategory])

	docs, err = r.Retrieve(ctx, "焦虑", WithCategory(CategoryChineseWisdom))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0].ID)

	docs, err = r.Retrieve(ctx, "焦虑 情绪", retriever.WithTopK(1))
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = r.Retrieve(ctx, "焦虑 情绪", retriever.WithScoreThreshold(0.9))
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestRetriever_Load(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	writeFile(t, filepath.Join(base, CategoryPsychologyBasics, "anxiety.md"), "# 焦虑\n焦虑是对未来的担忧。")
	writeFile(t, filepath.Join(base, CategoryPsychologyBasics, "notes.txt"), "焦虑 不会被加载")
	writeFile(t, filepath.Join(base, CategoryTherapyTechniques, "cbt.md"), "# 认知行为疗法\n记录自动思维。")

	r := NewRetriever()
	require.NoError(t, r.Load(ctx, base))
	assert.Equal(t, 2, r.DocumentCount())
	assert.Equal(t, []string{CategoryPsychologyBasics, CategoryTherapyTechniques}, r.Categories())

	results, err := r.Search(ctx, "焦虑", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "psychology_basics/anxiety.md", results[0].Source)
	assert.Equal(t, "心理科普知识", results[0].Description)
}

func TestRetriever_LoadMissingDir(t *testing.T) {
	r := NewRetriever()
	require.NoError(t, r.Load(context.Background(), filepath.Join(t.TempDir(), "nope")))
	assert.Equal(t, 0, r.DocumentCount())
	assert.Empty(t, r.Categories())
}

func TestRetriever_LoadWithChunking(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	var paragraphs []string
	for i := 0; i < 10; i++ {
		paragraphs = append(paragraphs, strings.Repeat("放松练习", 10))
	}
	writeFile(t, filepath.Join(base, CategoryTherapyTechniques, "relax.md"), strings.Join(paragraphs, "\n\n"))

	r := NewRetriever(WithChunking(100, 10))
	require.NoError(t, r.Load(ctx, base))
	docs := r.Documents(CategoryTherapyTechniques)
	require.Greater(t, len(docs), 1)
	for _, doc := range docs {
		assert.Equal(t, "therapy_techniques/relax.md", doc.MetaData[MetaSource])
		assert.Equal(t, CategoryTherapyTechniques, doc.MetaData[MetaCategory])
	}
}

func TestRetriever_LoadURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte("# 求助热线\n心理援助热线 400-161-9995"))
	}))
	defer srv.Close()

	ctx := context.Background()
	r := NewRetriever()
	err := r.LoadURLs(ctx, map[string][]string{
		CategoryCrisisResources: {srv.URL + "/hotlines.md", "http://127.0.0.1:0/missing.md"},
	})
	// 无法连接的地址报错，其余照常加载
	assert.Error(t, err)
	assert.Equal(t, 1, r.DocumentCount())

	results, err := r.Search(ctx, "热线", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, srv.URL+"/hotlines.md", results[0].Source)
	assert.Equal(t, "危机干预资源", results[0].Description)
	assert.Contains(t, results[0].Content, "400-161-9995")
}
