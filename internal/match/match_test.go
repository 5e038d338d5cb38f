package match

import (
	"context"
	"fmt"
	"testing"

	"bookbuddy/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSearchClient struct {
	mock.Mock
}

func (m *mockSearchClient) Search(ctx context.Context, query string, limit, page int) (*openlibrary.SearchResponse, error) {
	args := m.Called(ctx, query, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SearchResponse), args.Error(1)
}

func (m *mockSearchClient) GetWork(ctx context.Context, workKey string) (*openlibrary.Work, error) {
	args := m.Called(ctx, workKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.Work), args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("blank title issues no call", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		assert.True(t, r.Resolve(ctx, "", "George Orwell").IsZero())
		assert.True(t, r.Resolve(ctx, "   ", "George Orwell").IsZero())
		mc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("query includes author when present", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984 George Orwell", 20, 1).Return(&openlibrary.SearchResponse{}, nil)
		r.Resolve(ctx, "1984", "George Orwell")
		mc.AssertExpectations(t)
	})

	t.Run("transport failure is a soft failure", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 20, 1).Return(nil, fmt.Errorf("timeout"))
		assert.True(t, r.Resolve(ctx, "1984", "").IsZero())
	})

	t.Run("no candidates returns zero metadata", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 20, 1).Return(&openlibrary.SearchResponse{}, nil)
		assert.True(t, r.Resolve(ctx, "1984", "").IsZero())
	})

	t.Run("picks candidate with author match", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984 George Orwell", 20, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{
				{Title: "1984", CoverID: 111, ISBNs: openlibrary.StringList{"isbn-wrong"}},
				{Title: "1984", AuthorNames: openlibrary.StringList{"George Orwell"}, CoverID: 222, ISBNs: openlibrary.StringList{"isbn-right"}},
			},
		}, nil)

		meta := r.Resolve(ctx, "1984", "George Orwell")
		assert.Equal(t, "222", meta.CoverID)
		assert.Equal(t, "isbn-right", meta.ISBN)
	})

	t.Run("extracts winning candidate fields", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984 George Orwell", 20, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{
				Title:            "1984",
				AuthorNames:      openlibrary.StringList{"George Orwell"},
				CoverID:          7222246,
				ISBNs:            openlibrary.StringList{"9780141182636", "0141182636"},
				EditionKeys:      openlibrary.StringList{"OL1M", "OL2M"},
				FirstPublishYear: 1949,
			}},
		}, nil)

		meta := r.Resolve(ctx, "1984", "George Orwell")
		assert.Equal(t, Metadata{
			CoverURL:  "https://covers.openlibrary.org/b/id/7222246-L.jpg",
			CoverID:   "7222246",
			ISBN:      "9780141182636",
			EditionID: "OL1M",
			Year:      "1949",
		}, meta)
	})

	t.Run("cover URL priority holds", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		// Cover id, ISBN and edition id all present: the cover-id
		// template must win.
		mc.On("Search", ctx, "1984", 20, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{
				Title:       "1984",
				CoverID:     123,
				ISBNs:       openlibrary.StringList{"9780141182636"},
				EditionKeys: openlibrary.StringList{"OL1M"},
			}},
		}, nil)

		meta := r.Resolve(ctx, "1984", "")
		assert.Equal(t, "https://covers.openlibrary.org/b/id/123-L.jpg", meta.CoverURL)
	})

	t.Run("candidate without identifiers still matches", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, nil)

		mc.On("Search", ctx, "1984", 20, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{Title: "1984", FirstPublishYear: 1949}},
		}, nil)

		meta := r.Resolve(ctx, "1984", "")
		assert.Equal(t, "", meta.CoverURL)
		assert.Equal(t, "1949", meta.Year)
	})

	t.Run("caches successful resolutions", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, NewCache(10))

		mc.On("Search", ctx, "1984 George Orwell", 20, 1).Return(&openlibrary.SearchResponse{
			Docs: []openlibrary.Doc{{Title: "1984", CoverID: 7}},
		}, nil).Once()

		first := r.Resolve(ctx, "1984", "George Orwell")
		second := r.Resolve(ctx, "1984", "George Orwell")
		assert.Equal(t, first, second)
		mc.AssertNumberOfCalls(t, "Search", 1)
	})

	t.Run("does not cache empty resolutions", func(t *testing.T) {
		mc := new(mockSearchClient)
		r := NewResolver(mc, NewCache(10))

		mc.On("Search", ctx, "1984", 20, 1).Return(nil, fmt.Errorf("down")).Twice()

		r.Resolve(ctx, "1984", "")
		r.Resolve(ctx, "1984", "")
		mc.AssertNumberOfCalls(t, "Search", 2)
	})
}

func TestScore(t *testing.T) {
	query := func(doc openlibrary.Doc) int { return score("1984", "George Orwell", doc) }

	t.Run("exact title and author dominate", func(t *testing.T) {
		exact := openlibrary.Doc{Title: "1984", AuthorNames: openlibrary.StringList{"George Orwell"}}
		noAuthor := openlibrary.Doc{Title: "1984"}
		assert.Greater(t, query(exact), query(noAuthor))
		assert.Equal(t, 100, query(exact))
	})

	t.Run("partial title containment", func(t *testing.T) {
		partial := openlibrary.Doc{Title: "1984 (Signet Classics)"}
		assert.Equal(t, 25, query(partial))
	})

	t.Run("author substring either direction", func(t *testing.T) {
		sub := openlibrary.Doc{Title: "1984", AuthorNames: openlibrary.StringList{"Orwell"}}
		assert.Equal(t, 50+25, query(sub))
	})

	t.Run("no author supplied relaxes scoring", func(t *testing.T) {
		doc := openlibrary.Doc{Title: "1984", AuthorNames: openlibrary.StringList{"Somebody Else"}}
		assert.Equal(t, 50, score("1984", "", doc))
	})

	t.Run("identifier bonuses", func(t *testing.T) {
		doc := openlibrary.Doc{Title: "1984", CoverID: 9, ISBNs: openlibrary.StringList{"x"}}
		assert.Equal(t, 50+10+3, score("1984", "", doc))
	})

	t.Run("case insensitive", func(t *testing.T) {
		doc := openlibrary.Doc{Title: "THE BELL JAR", AuthorNames: openlibrary.StringList{"SYLVIA PLATH"}}
		assert.Equal(t, 100, score("the bell jar", "sylvia plath", doc))
	})
}

func TestBestDoc_StableTieBreak(t *testing.T) {
	docs := []openlibrary.Doc{
		{Title: "1984", Key: "first"},
		{Title: "1984", Key: "second"},
		{Title: "1984", Key: "third"},
	}
	best := bestDoc("1984", "", docs)
	assert.Equal(t, "first", best.Key)
}
