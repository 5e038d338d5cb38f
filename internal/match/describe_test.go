package match

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"bookbuddy/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestResolver_Describe(t *testing.T) {
	ctx := context.Background()

	t.Run("blank title issues no call", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		assert.Equal(t, "", r.Describe(ctx, "  ", "George Orwell"))
		mc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetches best work description", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984 George Orwell", 5, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{
				{Title: "Animal Farm", Key: "/works/OL2W"},
				{Title: "1984", AuthorNames: openlibrary.StringList{"George Orwell"}, Key: "/works/OL1W"},
			},
		}, nil)
		mc.On("GetWork", ctx, "/works/OL1W").Return(&openlibrary.Work{
			Description: rawString("A dystopian classic."),
		}, nil)

		assert.Equal(t, "A dystopian classic.", r.Describe(ctx, "1984", "George Orwell"))
		mc.AssertExpectations(t)
	})

	t.Run("non work key gives empty", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 5, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{Title: "1984", Key: "/books/OL1M"}},
		}, nil)

		assert.Equal(t, "", r.Describe(ctx, "1984", ""))
		mc.AssertNotCalled(t, "GetWork", mock.Anything, mock.Anything)
	})

	t.Run("search failure gives empty", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 5, 1).Return(nil, fmt.Errorf("down"))
		assert.Equal(t, "", r.Describe(ctx, "1984", ""))
	})

	t.Run("work fetch failure gives empty", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 5, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{Title: "1984", Key: "/works/OL1W"}},
		}, nil)
		mc.On("GetWork", ctx, "/works/OL1W").Return(nil, fmt.Errorf("down"))

		assert.Equal(t, "", r.Describe(ctx, "1984", ""))
	})
}

func TestTidyDescription(t *testing.T) {
	assert.Equal(t, "Short.", tidyDescription("  Short.  "))

	long := strings.Repeat("word ", 200) // 1000 chars
	got := tidyDescription(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), maxDescriptionLen+1)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), " "))
}
