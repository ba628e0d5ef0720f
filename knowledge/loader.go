package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino-ext/components/document/loader/url"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
	"github.com/gookit/slog"
)

// Load 读取 basePath/<category>/*.md，缺失的类别目录跳过
func (r *Retriever) Load(ctx context.Context, basePath string) error {
	loader, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		UseNameAsID: true,
		Parser:      parser.TextParser{},
	})
	if err != nil {
		return fmt.Errorf("创建文件加载器失败: %w", err)
	}
	splitter, err := r.newSplitter(ctx)
	if err != nil {
		return err
	}

	for _, c := range r.categories {
		dir := filepath.Join(basePath, c.Name)
		if _, err := os.Stat(dir); err != nil {
			slog.Warnf("知识类别目录不存在: %s", dir)
			continue
		}
		paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
		if err != nil {
			return fmt.Errorf("匹配知识文件失败: %w", err)
		}
		sort.Strings(paths)

		for _, path := range paths {
			docs, err := loader.Load(ctx, document.Source{URI: path})
			if err != nil {
				slog.Errorf("加载知识文件失败 %s: %s", path, err)
				continue
			}
			source, err := filepath.Rel(basePath, path)
			if err != nil {
				source = path
			}
			docs, err = r.prepare(ctx, splitter, filepath.ToSlash(source), docs)
			if err != nil {
				slog.Errorf("切分知识文件失败 %s: %s", path, err)
				continue
			}
			if err := r.AddDocuments(c.Name, docs...); err != nil {
				return err
			}
		}
	}

	slog.Infof("知识库加载完成: %d 个类别, %d 篇文档", len(r.Categories()), r.DocumentCount())
	return nil
}

// LoadURL 加载远程 markdown/文本文档到指定类别
func (r *Retriever) LoadURL(ctx context.Context, category, uri string) error {
	loader, err := url.NewLoader(ctx, &url.LoaderConfig{Parser: parser.TextParser{}})
	if err != nil {
		return fmt.Errorf("创建URL加载器失败: %w", err)
	}
	docs, err := loader.Load(ctx, document.Source{URI: uri})
	if err != nil {
		return fmt.Errorf("加载 %s 失败: %w", uri, err)
	}
	splitter, err := r.newSplitter(ctx)
	if err != nil {
		return err
	}
	docs, err = r.prepare(ctx, splitter, uri, docs)
	if err != nil {
		return err
	}
	return r.AddDocuments(category, docs...)
}

// LoadURLs 按类别加载远程文档，单个地址失败不影响其余地址
func (r *Retriever) LoadURLs(ctx context.Context, urls map[string][]string) error {
	categories := make([]string, 0, len(urls))
	for category := range urls {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var errs []error
	for _, category := range categories {
		for _, uri := range urls[category] {
			if err := r.LoadURL(ctx, category, uri); err != nil {
				slog.Errorf("加载远程知识失败 %s: %s", uri, err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Retriever) newSplitter(ctx context.Context) (document.Transformer, error) {
	if r.chunkSize <= 0 {
		return nil, nil
	}
	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   r.chunkSize,
		OverlapSize: r.chunkOverlap,
		Separators:  []string{"\n## ", "\n\n", "\n", "。", "！", "？"},
		LenFunc:     utf8.RuneCountInString,
	})
	if err != nil {
		return nil, fmt.Errorf("创建文档切分器失败: %w", err)
	}
	return splitter, nil
}

// prepare 可选切分，并为每个片段设置来源
func (r *Retriever) prepare(ctx context.Context, splitter document.Transformer, source string, docs []*schema.Document) ([]*schema.Document, error) {
	if splitter != nil {
		var err error
		docs, err = splitter.Transform(ctx, docs)
		if err != nil {
			return nil, err
		}
	}
	for i, doc := range docs {
		if doc.MetaData == nil {
			doc.MetaData = make(map[string]any)
		}
		doc.MetaData[MetaSource] = source
		if doc.ID == "" || splitter != nil {
			doc.ID = fmt.Sprintf("%s#%d", source, i)
		}
	}
	return docs, nil
}
