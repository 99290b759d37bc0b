package repositories

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/models"
)

const searchHistoryKey = "boxtube_search_history"

// Collection policy for search history.
const (
	maxSearchHistory   = 20
	recentSearchCount  = 5
	historySuggestMax  = 5
	trendingSuggestMax = 3
	suggestionMax      = 8
)

// trendingTerms is the fixed list mixed into suggestions alongside history
// matches.
var trendingTerms = []string{
	"music videos",
	"trending",
	"news today",
	"gaming",
	"tutorials",
	"documentaries",
	"podcasts",
	"live streams",
}

// SearchHistoryStore owns the identity-scoped search-term history.
//
// Terms are identified case-insensitively, kept most-recent-first, and capped
// at 20 entries.
type SearchHistoryStore struct {
	kv      KV
	logger  *log.Logger
	scopeID string
	entries []models.SearchEntry
}

// NewSearchHistoryStore creates a [SearchHistoryStore] for the given identity
// scope and loads its collection.
func NewSearchHistoryStore(kv KV, logger *log.Logger, scopeID string) *SearchHistoryStore {
	store := &SearchHistoryStore{kv: kv, logger: logger}
	store.SetScope(scopeID)
	return store
}

// SetScope swaps the active collection to the given identity scope.
func (s *SearchHistoryStore) SetScope(scopeID string) {
	s.scopeID = scopeID
	s.entries = loadCollection(s.kv, s.logger, s.key(), []models.SearchEntry{})
}

func (s *SearchHistoryStore) key() string {
	return ScopedKey(searchHistoryKey, s.scopeID)
}

// Add records a search term. Re-adding an existing term (case-insensitively)
// moves it to the front with a fresh timestamp; the collection is trimmed to
// its cap from the oldest end. Blank terms are ignored.
func (s *SearchHistoryStore) Add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	entries := make([]models.SearchEntry, 0, len(s.entries)+1)
	entries = append(entries, models.SearchEntry{Term: term, Timestamp: time.Now()})
	for _, entry := range s.entries {
		if !strings.EqualFold(entry.Term, term) {
			entries = append(entries, entry)
		}
	}
	if len(entries) > maxSearchHistory {
		entries = entries[:maxSearchHistory]
	}

	s.entries = entries
	s.persist()
}

// Remove deletes the exact term from history.
func (s *SearchHistoryStore) Remove(term string) {
	kept := s.entries[:0]
	for _, entry := range s.entries {
		if entry.Term != term {
			kept = append(kept, entry)
		}
	}
	s.entries = kept
	s.persist()
}

// Clear empties the history and removes the stored key.
func (s *SearchHistoryStore) Clear() {
	s.entries = []models.SearchEntry{}
	if err := s.kv.Delete(s.key()); err != nil {
		s.logger.Error("failed to clear search history", "error", err)
	}
}

// All returns the history, most recent first.
func (s *SearchHistoryStore) All() []models.SearchEntry {
	return s.entries
}

// Recent returns up to the five most recent terms.
func (s *SearchHistoryStore) Recent() []string {
	count := min(recentSearchCount, len(s.entries))
	terms := make([]string, 0, count)
	for _, entry := range s.entries[:count] {
		terms = append(terms, entry.Term)
	}
	return terms
}

// Suggestions generates completions for the input: up to five history terms
// containing it, mixed with up to three matching trending terms, deduped and
// capped at eight. Blank input yields nothing.
func (s *SearchHistoryStore) Suggestions(input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)

	historyCount := 0
	for _, entry := range s.entries {
		if historyCount == historySuggestMax {
			break
		}
		if strings.Contains(strings.ToLower(entry.Term), input) && !seen[entry.Term] {
			suggestions = append(suggestions, entry.Term)
			seen[entry.Term] = true
			historyCount++
		}
	}

	trendingCount := 0
	for _, term := range trendingTerms {
		if trendingCount == trendingSuggestMax {
			break
		}
		if strings.Contains(strings.ToLower(term), input) && !seen[term] {
			suggestions = append(suggestions, term)
			seen[term] = true
			trendingCount++
		}
	}

	if len(suggestions) > suggestionMax {
		suggestions = suggestions[:suggestionMax]
	}
	return suggestions
}

func (s *SearchHistoryStore) persist() {
	saveCollection(s.kv, s.logger, s.key(), s.entries)
}
