package screening

import (
	"context"

	"resume-screener/internal/extract"
	"resume-screener/internal/llm"
	"resume-screener/internal/shared/telemetry"
)

// Service runs the per-document analysis pipeline and aggregates the results.
type Service struct {
	client llm.Client
	mode   Mode
}

// NewService constructs a Service for the configured mode.
func NewService(client llm.Client, mode Mode) *Service {
	return &Service{client: client, mode: mode}
}

// Table is the request-scoped result of one submission. Columns are ordered
// by first appearance across rows; rows follow document processing order.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Screen analyzes every document with non-empty content and collects the rows
// into a table. A document whose content is an extraction error message is
// still analyzed; the resulting Error row surfaces the problem to the user.
// No per-document failure aborts the batch.
func (s *Service) Screen(ctx context.Context, apiKey string, docs []extract.Document) Table {
	var rows []*Record
	for _, doc := range docs {
		if doc.Content == "" {
			continue
		}

		rec := s.analyze(ctx, apiKey, doc)

		// The record's own candidate name field, when present, overrides the
		// file name.
		row := NewRecord()
		row.Set(candidateKey, doc.FileName)
		for _, key := range rec.Keys() {
			value, _ := rec.Get(key)
			row.Set(key, value)
		}
		rows = append(rows, row)
	}
	return buildTable(rows)
}

func (s *Service) analyze(ctx context.Context, apiKey string, doc extract.Document) *Record {
	raw, err := s.client.Complete(ctx, apiKey, llm.CompletionRequest{
		Prompt:      s.mode.Prompt(doc.Content),
		MaxTokens:   s.mode.MaxTokens(),
		Temperature: s.mode.Temperature(),
	})
	if err != nil {
		telemetry.Error("screening.complete.failed", map[string]any{
			"file": doc.FileName,
			"err":  err.Error(),
		})
		return ErrorRecord("Error processing completion: " + err.Error())
	}
	return s.mode.Parse(raw, doc.Content)
}

// buildTable merges rows into a table, dropping the transient rating column.
func buildTable(rows []*Record) Table {
	var table Table
	seen := make(map[string]struct{})
	for _, row := range rows {
		out := make(map[string]string, row.Len())
		for _, key := range row.Keys() {
			value, _ := row.Get(key)
			if key == ratingKey {
				continue
			}
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				table.Columns = append(table.Columns, key)
			}
			out[key] = value
		}
		table.Rows = append(table.Rows, out)
	}
	return table
}
