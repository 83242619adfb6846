package service

import (
	"context"
	"testing"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/store/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchClassesFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewClassSearch(nil, repos.Classes, nil)

	for _, c := range []*entity.Class{
		{Title: "Intro to Go", Status: entity.ClassStatusAccepted},
		{Title: "Advanced Go", Status: entity.ClassStatusPending},
		{Title: "Rust basics", Status: entity.ClassStatusAccepted},
	} {
		require.NoError(t, repos.Classes.Create(ctx, c))
	}

	got, err := svc.SearchClasses(ctx, "go", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Intro to Go", got[0].Title)
}

func TestIndexWithoutClientIsNoop(t *testing.T) {
	svc := NewClassSearch(nil, memory.New().Classes, nil)
	assert.NoError(t, svc.IndexClass(context.Background(), &entity.Class{ID: uuid.New()}))
	assert.NoError(t, svc.RemoveClass(context.Background(), uuid.New()))

	n, err := svc.Reindex(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlainText(t *testing.T) {
	s := NewClassSearch(nil, nil, nil).(*classSearch)
	assert.Equal(t, "Learn Go & ship it", s.plainText("<p>Learn <b>Go</b> &amp;</p><p>ship   it</p>"))
}
