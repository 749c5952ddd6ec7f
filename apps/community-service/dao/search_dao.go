package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"campus-hub/apps/community-service/model"
	"campus-hub/pkg/logger"
)

// 索引名常量
const (
	IndexNews   = "campus_news"
	IndexTopics = "campus_topics"
)

// searchDocument 索引文档结构
type searchDocument struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary,omitempty"`
}

// elasticsearchDAO 全文检索实现，client为nil时降级为空结果
type elasticsearchDAO struct {
	client *elasticsearch.Client
	logger logger.Logger
}

// NewSearchDAO 创建搜索DAO实例
func NewSearchDAO(client *elasticsearch.Client, log logger.Logger) SearchDAO {
	return &elasticsearchDAO{
		client: client,
		logger: log,
	}
}

// IsAvailable 判断搜索后端是否可用
func (d *elasticsearchDAO) IsAvailable() bool {
	return d.client != nil
}

// IndexNews 索引已发布稿件
func (d *elasticsearchDAO) IndexNews(ctx context.Context, news *model.NewsArticle) error {
	return d.indexDocument(ctx, IndexNews, news.ID, &searchDocument{
		ID:      news.ID,
		Type:    model.ObjectTypeNews,
		Title:   news.Title,
		Content: news.Content,
		Summary: news.Summary,
	})
}

// IndexTopic 索引开放话题
func (d *elasticsearchDAO) IndexTopic(ctx context.Context, topic *model.Topic) error {
	return d.indexDocument(ctx, IndexTopics, topic.ID, &searchDocument{
		ID:      topic.ID,
		Type:    model.ObjectTypeTopic,
		Title:   topic.Title,
		Content: topic.Content,
	})
}

// RemoveNews 从索引移除稿件
func (d *elasticsearchDAO) RemoveNews(ctx context.Context, newsID string) error {
	return d.deleteDocument(ctx, IndexNews, newsID)
}

// RemoveTopic 从索引移除话题
func (d *elasticsearchDAO) RemoveTopic(ctx context.Context, topicID string) error {
	return d.deleteDocument(ctx, IndexTopics, topicID)
}

// indexDocument 索引文档
func (d *elasticsearchDAO) indexDocument(ctx context.Context, indexName, docID string, document interface{}) error {
	if d.client == nil {
		return nil
	}

	docJSON, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %v", err)
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: docID,
		Body:       bytes.NewReader(docJSON),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, d.client)
	if err != nil {
		d.logger.Error(ctx, "Failed to index document",
			logger.F("index", indexName),
			logger.F("doc_id", docID),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to index document: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}

	return nil
}

// deleteDocument 删除文档，文档不存在不算失败
func (d *elasticsearchDAO) deleteDocument(ctx context.Context, indexName, docID string) error {
	if d.client == nil {
		return nil
	}

	req := esapi.DeleteRequest{
		Index:      indexName,
		DocumentID: docID,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, d.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}

	return nil
}

// Search 多索引全文检索
func (d *elasticsearchDAO) Search(ctx context.Context, params *model.SearchParams) ([]*SearchResult, int64, error) {
	if d.client == nil {
		return nil, 0, nil
	}

	indices := []string{IndexNews, IndexTopics}
	switch params.Type {
	case model.ObjectTypeNews:
		indices = []string{IndexNews}
	case model.ObjectTypeTopic:
		indices = []string{IndexTopics}
	}

	page, pageSize := normalizePage(params.Page, params.PageSize)
	from := (page - 1) * pageSize

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": params.Query,
				"fields": []string{
					"title^3",
					"summary^2",
					"content^1",
				},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": pageSize,
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal query: %v", err)
	}

	req := esapi.SearchRequest{
		Index: indices,
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, d.client)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("search failed: %s", res.String())
	}

	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64        `json:"_score"`
				Source searchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %v", err)
	}

	results := make([]*SearchResult, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		snippet := hit.Source.Summary
		if snippet == "" {
			snippet = truncate(hit.Source.Content, 200)
		}
		results = append(results, &SearchResult{
			ID:      hit.Source.ID,
			Type:    hit.Source.Type,
			Title:   hit.Source.Title,
			Snippet: snippet,
			Score:   hit.Score,
		})
	}

	return results, response.Hits.Total.Value, nil
}

// truncate 截断字符串
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
