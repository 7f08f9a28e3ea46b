package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ateeblj/Mini-Google/model"
)

// fakeEngine satisfies the DocumentReader calls BuildSearchResponse makes.
type fakeEngine struct {
	Engine
}

func (fakeEngine) FilenameFor(docID int) string           { return "doc.txt" }
func (fakeEngine) FilepathFor(docID int) string           { return "/data/doc.txt" }
func (fakeEngine) SnippetForDoc(_ []string, _ int) string { return "snippet" }

func TestBuildSearchResponsePaginationMetadata(t *testing.T) {
	results := []model.RankedDoc{{DocID: 0, Score: 1}, {DocID: 1, Score: 0.5}}

	t.Run("middle page", func(t *testing.T) {
		resp := BuildSearchResponse(fakeEngine{}, ModeSearch, "q", []string{"q"}, results, 25, 2, 10, time.Millisecond)
		assert.Equal(t, 3, resp.TotalPages)
		require.NotNil(t, resp.NextPage)
		assert.Equal(t, 3, *resp.NextPage)
		require.NotNil(t, resp.PrevPage)
		assert.Equal(t, 1, *resp.PrevPage)
		assert.Equal(t, "q", resp.Query)
		assert.Empty(t, resp.Prefix)
	})

	t.Run("last page has no next", func(t *testing.T) {
		resp := BuildSearchResponse(fakeEngine{}, ModeSearch, "q", []string{"q"}, results, 25, 3, 10, 0)
		assert.Nil(t, resp.NextPage)
		require.NotNil(t, resp.PrevPage)
	})

	t.Run("first page has no prev", func(t *testing.T) {
		resp := BuildSearchResponse(fakeEngine{}, ModeSearch, "q", []string{"q"}, results, 25, 1, 10, 0)
		assert.Nil(t, resp.PrevPage)
	})

	t.Run("empty result set is one page", func(t *testing.T) {
		resp := BuildSearchResponse(fakeEngine{}, ModeSearch, "q", []string{"q"}, nil, 0, 1, 10, 0)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Equal(t, 0, resp.Count)
		assert.Nil(t, resp.NextPage)
		assert.Nil(t, resp.PrevPage)
	})
}

func TestBuildSearchResponseRanksAndFields(t *testing.T) {
	results := []model.RankedDoc{
		{DocID: 4, Score: 2.5, TotalOccurrences: 7, InTitle: true},
		{DocID: 9, Score: 1.0, ExactPhraseMatch: true},
	}
	resp := BuildSearchResponse(fakeEngine{}, ModeSearch, "q", []string{"q"}, results, 12, 2, 10, 0)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, 11, resp.Results[0].Rank)
	assert.Equal(t, 12, resp.Results[1].Rank)
	assert.Equal(t, "doc.txt", resp.Results[0].Filename)
	assert.Equal(t, "/data/doc.txt", resp.Results[0].Filepath)
	assert.Equal(t, "snippet", resp.Results[0].Snippet)
	assert.True(t, resp.Results[0].InTitle)
	assert.True(t, resp.Results[1].ExactPhraseMatch)
}

func TestBuildSearchResponsePrefixMode(t *testing.T) {
	resp := BuildSearchResponse(fakeEngine{}, ModePrefixSearch, "app", []string{"app"}, nil, 0, 1, 10, 0)
	assert.Equal(t, "app", resp.Prefix)
	assert.Empty(t, resp.Query)
	assert.Equal(t, ModePrefixSearch, resp.Mode)
}
