package api

import "github.com/kevinclancy/kboard/shared/domain"

type SearchResponse struct {
	Results    []domain.SearchResult `json:"results"`
	TotalFound int                   `json:"total_found"`
}
