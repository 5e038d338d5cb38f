// Package match picks the most plausible Open Library record for a
// (title, author) query and extracts the identifying metadata used to
// build cover URLs and catalog rows.
package match

import (
	"context"
	"strconv"
	"strings"

	"bookbuddy/internal/platform/openlibrary"
)

const searchLimit = 20

// Metadata is the chosen candidate's identifying fields. Every field may
// be empty; a zero Metadata means no usable match was found.
type Metadata struct {
	CoverURL  string `json:"cover_url"`
	CoverID   string `json:"cover_id"`
	ISBN      string `json:"isbn"`
	EditionID string `json:"edition_id"`
	Year      string `json:"year"`
}

func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// SearchClient is the slice of the Open Library client the matcher needs.
type SearchClient interface {
	Search(ctx context.Context, query string, limit, page int) (*openlibrary.SearchResponse, error)
	GetWork(ctx context.Context, workKey string) (*openlibrary.Work, error)
}

type Resolver struct {
	client SearchClient
	cache  *Cache
}

// NewResolver wires a resolver to an Open Library client. cache may be
// nil to disable caching.
func NewResolver(client SearchClient, cache *Cache) *Resolver {
	return &Resolver{client: client, cache: cache}
}

// Resolve finds the best match for (title, author). Transport failures,
// empty responses and unusable records all produce a zero Metadata; the
// caller treats that as "no metadata available", never as an error.
func (r *Resolver) Resolve(ctx context.Context, title, author string) Metadata {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return Metadata{}
	}

	if r.cache != nil {
		if meta, ok := r.cache.Get(title, author); ok {
			return meta
		}
	}

	query := title
	if author != "" {
		query = title + " " + author
	}

	res, err := r.client.Search(ctx, query, searchLimit, 1)
	if err != nil || len(res.Docs) == 0 {
		return Metadata{}
	}

	best := bestDoc(title, author, res.Docs)
	meta := extract(best)

	if r.cache != nil && !meta.IsZero() {
		r.cache.Put(title, author, meta)
	}
	return meta
}

// bestDoc returns the highest-scoring document. Stable max: on a tie the
// first-encountered document wins.
func bestDoc(title, author string, docs []openlibrary.Doc) openlibrary.Doc {
	best := docs[0]
	bestScore := score(title, author, docs[0])
	for _, doc := range docs[1:] {
		if s := score(title, author, doc); s > bestScore {
			best = doc
			bestScore = s
		}
	}
	return best
}

// score is the additive matching heuristic. Exact title beats partial
// containment; the same holds for the first listed author when the query
// supplied one. A cover id and ISBNs are weak quality signals.
func score(title, author string, doc openlibrary.Doc) int {
	s := titleAuthorScore(title, author, doc)

	if doc.CoverID != 0 {
		s += 10
	}
	if len(doc.ISBNs) > 0 {
		s += 3
	}
	return s
}

func titleAuthorScore(title, author string, doc openlibrary.Doc) int {
	s := 0
	tLow := strings.ToLower(title)
	aLow := strings.ToLower(author)

	dTitle := strings.ToLower(strings.TrimSpace(doc.Title))
	if dTitle == tLow {
		s += 50
	} else if tLow != "" && strings.Contains(dTitle, tLow) {
		s += 25
	}

	firstAuthor := ""
	if len(doc.AuthorNames) > 0 {
		firstAuthor = strings.ToLower(strings.TrimSpace(doc.AuthorNames[0]))
	}

	if aLow != "" && firstAuthor != "" {
		if firstAuthor == aLow {
			s += 50
		} else if strings.Contains(firstAuthor, aLow) || strings.Contains(aLow, firstAuthor) {
			s += 25
		}
	}

	return s
}

func extract(doc openlibrary.Doc) Metadata {
	var meta Metadata

	if doc.CoverID != 0 {
		meta.CoverID = strconv.FormatInt(doc.CoverID, 10)
	}
	if len(doc.ISBNs) > 0 {
		meta.ISBN = strings.TrimSpace(doc.ISBNs[0])
	}
	if len(doc.EditionKeys) > 0 {
		meta.EditionID = strings.TrimSpace(doc.EditionKeys[0])
	}
	if doc.FirstPublishYear != 0 {
		meta.Year = strconv.Itoa(doc.FirstPublishYear)
	}

	meta.CoverURL = openlibrary.CoverURL(meta.CoverID, meta.ISBN, meta.EditionID)
	return meta
}
