package dto

import "io"

// ImageFile is an uploaded image waiting to be pushed to image storage.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type SearchFilter struct {
	Search string `form:"search"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Total: int64(len(items))}
}
