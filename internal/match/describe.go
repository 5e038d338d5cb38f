package match

import (
	"context"
	"strings"
	"unicode/utf8"

	"bookbuddy/internal/platform/openlibrary"
)

const (
	describeSearchLimit = 5
	maxDescriptionLen   = 600
)

// Describe fetches a best-effort description for (title, author): search,
// pick the most plausible work, fetch its record. Every failure along the
// way returns the empty string.
func (r *Resolver) Describe(ctx context.Context, title, author string) string {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return ""
	}

	query := title
	if author != "" {
		query = title + " " + author
	}

	res, err := r.client.Search(ctx, query, describeSearchLimit, 1)
	if err != nil || len(res.Docs) == 0 {
		return ""
	}

	best := res.Docs[0]
	bestScore := describeScore(title, author, best)
	for _, doc := range res.Docs[1:] {
		if s := describeScore(title, author, doc); s > bestScore {
			best = doc
			bestScore = s
		}
	}

	workKey := strings.TrimSpace(best.Key)
	if !strings.HasPrefix(workKey, "/works/") {
		return ""
	}

	work, err := r.client.GetWork(ctx, workKey)
	if err != nil {
		return ""
	}

	return tidyDescription(work.DescriptionText())
}

// describeScore weighs the same title/author signals as the cover
// matcher but rewards a resolvable work key instead of cover/ISBN data.
func describeScore(title, author string, doc openlibrary.Doc) int {
	s := titleAuthorScore(title, author, doc)
	if doc.Key != "" {
		s += 5
	}
	return s
}

// tidyDescription trims to a UI-friendly length on a word boundary.
func tidyDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) <= maxDescriptionLen {
		return desc
	}

	runes := []rune(desc)
	cut := string(runes[:maxDescriptionLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:.") + "…"
}
