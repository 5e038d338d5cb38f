package seed

import (
	"context"
	"testing"

	"bookbuddy/internal/book"
	"bookbuddy/internal/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) FindByTitleAuthor(ctx context.Context, title, author string) (book.Book, error) {
	args := m.Called(ctx, title, author)
	return args.Get(0).(book.Book), args.Error(1)
}

func (m *mockStore) InsertBatch(ctx context.Context, books []*book.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, title, author string) match.Metadata {
	args := m.Called(ctx, title, author)
	return args.Get(0).(match.Metadata)
}

func TestEnsureSeeded_SkipsWhenCatalogIsLargeEnough(t *testing.T) {
	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(250, nil)

	err := EnsureSeeded(context.Background(), resolver, store, CuratedShelves, 250)

	require.NoError(t, err)
	store.AssertNotCalled(t, "FindByTitleAuthor", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureSeeded_InsertsMissingEntriesInOneBatch(t *testing.T) {
	shelves := []Shelf{{
		Name: "Classics",
		Items: []Entry{
			{"1984", "George Orwell", "Classics"},
			{"Dracula", "Bram Stoker", "Classics"},
		},
	}}

	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(0, nil)
	store.On("FindByTitleAuthor", mock.Anything, "1984", "George Orwell").Return(book.Book{}, book.ErrNotFound)
	store.On("FindByTitleAuthor", mock.Anything, "Dracula", "Bram Stoker").Return(book.Book{}, book.ErrNotFound)
	resolver.On("Resolve", mock.Anything, "1984", "George Orwell").Return(match.Metadata{
		CoverURL: "https://covers.openlibrary.org/b/id/7222246-L.jpg",
		CoverID:  "7222246",
		ISBN:     "9780141182636",
		Year:     "1949",
	}).Once()
	resolver.On("Resolve", mock.Anything, "Dracula", "Bram Stoker").Return(match.Metadata{}).Once()

	var inserted []*book.Book
	store.On("InsertBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]*book.Book)
	}).Return(nil).Once()

	err := EnsureSeeded(context.Background(), resolver, store, shelves, 250)

	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Equal(t, "1984", inserted[0].Title)
	assert.Equal(t, "Classics", inserted[0].Genre)
	assert.Equal(t, "1949", inserted[0].Year)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/7222246-L.jpg", inserted[0].CoverURL)
	// No cover resolved for Dracula, so the placeholder stands in.
	assert.Equal(t, book.PlaceholderCover, inserted[1].CoverURL)
	store.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestEnsureSeeded_SkipsExistingWithoutLookup(t *testing.T) {
	shelves := []Shelf{{
		Name:  "Classics",
		Items: []Entry{{"1984", "George Orwell", "Classics"}},
	}}

	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(1, nil)
	store.On("FindByTitleAuthor", mock.Anything, "1984", "George Orwell").Return(book.Book{ID: "b1"}, nil)

	err := EnsureSeeded(context.Background(), resolver, store, shelves, 250)

	require.NoError(t, err)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestEnsureSeeded_SkipsBlankEntriesAndDefaultsGenre(t *testing.T) {
	shelves := []Shelf{{
		Name: "Mixed",
		Items: []Entry{
			{"  ", "George Orwell", "Classics"},
			{"The Road", "Cormac McCarthy", ""},
		},
	}}

	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(0, nil)
	store.On("FindByTitleAuthor", mock.Anything, "The Road", "Cormac McCarthy").Return(book.Book{}, book.ErrNotFound)
	resolver.On("Resolve", mock.Anything, "The Road", "Cormac McCarthy").Return(match.Metadata{})

	var inserted []*book.Book
	store.On("InsertBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).([]*book.Book)
	}).Return(nil)

	err := EnsureSeeded(context.Background(), resolver, store, shelves, 250)

	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, book.DefaultGenre, inserted[0].Genre)
}

func TestEnsureSeeded_SecondRunIsANoOp(t *testing.T) {
	shelves := []Shelf{{
		Name:  "Classics",
		Items: []Entry{{"1984", "George Orwell", "Classics"}},
	}}

	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(0, nil).Once()
	store.On("FindByTitleAuthor", mock.Anything, "1984", "George Orwell").Return(book.Book{}, book.ErrNotFound).Once()
	resolver.On("Resolve", mock.Anything, "1984", "George Orwell").Return(match.Metadata{}).Once()
	store.On("InsertBatch", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, EnsureSeeded(context.Background(), resolver, store, shelves, 250))

	// Everything now exists; the pass finds nothing to insert.
	store.On("Count", mock.Anything).Return(1, nil).Once()
	store.On("FindByTitleAuthor", mock.Anything, "1984", "George Orwell").Return(book.Book{ID: "b1"}, nil).Once()

	require.NoError(t, EnsureSeeded(context.Background(), resolver, store, shelves, 250))

	store.AssertNumberOfCalls(t, "InsertBatch", 1)
	resolver.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestEnsureSeeded_BatchFailureSurfaces(t *testing.T) {
	shelves := []Shelf{{
		Name:  "Classics",
		Items: []Entry{{"1984", "George Orwell", "Classics"}},
	}}

	store := new(mockStore)
	resolver := new(mockResolver)
	store.On("Count", mock.Anything).Return(0, nil)
	store.On("FindByTitleAuthor", mock.Anything, "1984", "George Orwell").Return(book.Book{}, book.ErrNotFound)
	resolver.On("Resolve", mock.Anything, "1984", "George Orwell").Return(match.Metadata{})
	store.On("InsertBatch", mock.Anything, mock.Anything).Return(assert.AnError)

	err := EnsureSeeded(context.Background(), resolver, store, shelves, 250)

	assert.Error(t, err)
}

func TestCuratedShelves_WellFormed(t *testing.T) {
	seen := map[[2]string]bool{}
	for _, shelf := range CuratedShelves {
		assert.NotEmpty(t, shelf.Name)
		for _, item := range shelf.Items {
			assert.NotEmpty(t, item.Title)
			assert.NotEmpty(t, item.Author)
			key := [2]string{item.Title, item.Author}
			assert.False(t, seen[key], "duplicate curated entry %q by %q", item.Title, item.Author)
			seen[key] = true
		}
	}
}
