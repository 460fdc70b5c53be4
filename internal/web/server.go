package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/revisehq/revise/internal/deckstats"
	"github.com/revisehq/revise/internal/domain"
	"github.com/revisehq/revise/internal/history"
	"github.com/revisehq/revise/internal/scheduler"
	"github.com/revisehq/revise/internal/session"
	"github.com/revisehq/revise/internal/storage"
	"github.com/revisehq/revise/internal/syncer"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	db        *storage.DB
	router    *http.ServeMux
	clock     domain.Clock
	templates *template.Template
	reposDir  string

	// One study session at a time; this is a single-user app. The queue
	// holds the remaining due cards in presentation order.
	mu     sync.Mutex
	study  session.Session
	queue  []domain.Card
	deckID string
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, clock domain.Clock, reposDir string) *Server {
	// Parse templates
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:        db,
		router:    http.NewServeMux(),
		clock:     clock,
		templates: tpl,
		reposDir:  reposDir,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("/static/", http.StripPrefix("/static/", fileServer))
	s.router.Handle("/", fileServer)

	// HTMX-based routes
	s.router.HandleFunc("/decks", s.handleGetDecks())
	s.router.HandleFunc("/study/start/", s.handleStartStudy())
	s.router.HandleFunc("/study/next", s.handleGetNextCard())
	s.router.HandleFunc("/study/answer/", s.handleShowAnswer())
	s.router.HandleFunc("/study/review/", s.handlePostReview())

	// Read-only views
	s.router.HandleFunc("/dashboard", s.handleDashboard())
	s.router.HandleFunc("/heatmap.json", s.handleHeatmap())

	// Source management routes
	s.router.HandleFunc("/sources", s.handleSources())
	s.router.HandleFunc("/sources/", s.handleDeleteSource())
	s.router.HandleFunc("/sync", s.handlePostSync())
}

// deckView is a deck row on the deck list page.
type deckView struct {
	ID    string
	Name  string
	Stats deckstats.Summary
}

// handleGetDecks renders the deck list with projected statistics.
func (s *Server) handleGetDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decks, err := s.db.ListDecks()
		if err != nil {
			slog.Error("Error listing decks", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		now := s.clock.Now()
		views := make([]deckView, 0, len(decks))
		for _, d := range decks {
			cards, err := s.db.GetCardsByDeckID(d.ID)
			if err != nil {
				slog.Error("Error loading cards for deck", "deck_id", d.ID, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			views = append(views, deckView{
				ID:    d.ID,
				Name:  d.Name,
				Stats: deckstats.Project(cards, now),
			})
		}
		s.templates.ExecuteTemplate(w, "deck_list", map[string]interface{}{
			"Decks": views,
		})
	}
}

// handleStartStudy computes the due-set for a deck and begins a session.
func (s *Server) handleStartStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		deckID := strings.TrimPrefix(r.URL.Path, "/study/start/")
		deck, err := s.db.LoadDeck(deckID)
		if err != nil {
			slog.Error("Error loading deck", "deck_id", deckID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if deck == nil {
			http.NotFound(w, r)
			return
		}

		due := scheduler.SelectDue(deck.Cards, s.clock.Now())

		s.mu.Lock()
		s.queue = due
		s.deckID = deck.ID
		s.study.Start(len(due))
		s.mu.Unlock()

		s.renderCurrentCard(w)
	}
}

// handleGetNextCard renders the front of the current due card, or the
// session summary once everything has been answered.
func (s *Server) handleGetNextCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderCurrentCard(w)
	}
}

// renderCurrentCard shows the front of the next card in the queue. An empty
// due-set is a normal, handled state, not an error.
func (s *Server) renderCurrentCard(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		s.templates.ExecuteTemplate(w, "session_complete", map[string]interface{}{
			"Total":     s.study.Total(),
			"Correct":   s.study.Correct(),
			"Incorrect": s.study.Incorrect(),
			"Studied":   s.study.Total() > 0,
			"DeckID":    s.deckID,
		})
		return
	}

	s.templates.ExecuteTemplate(w, "card_front", map[string]interface{}{
		"Card":      s.queue[0],
		"Remaining": s.study.Remaining(),
		"Total":     s.study.Total(),
	})
}

// handleShowAnswer renders the back of a card with the rating buttons.
func (s *Server) handleShowAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/study/answer/")
		card, err := s.db.FindCardByID(id)
		if err != nil || card == nil {
			http.NotFound(w, r)
			return
		}
		s.templates.ExecuteTemplate(w, "card_back", card)
	}
}

// handlePostReview processes one answer: reschedule the card, persist it,
// append the review event, update the session, and render the next card.
// The card write and the session record are paired; if the persist fails the
// session does not advance and the card stays due.
func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/study/review/")
		gradeStr := r.PostFormValue("grade")
		grade, err := strconv.Atoi(gradeStr)
		if err != nil {
			http.Error(w, "Invalid grade", http.StatusBadRequest)
			return
		}
		rating := domain.Rating(grade)

		card, err := s.db.FindCardByID(id)
		if err != nil || card == nil {
			http.NotFound(w, r)
			return
		}

		now := s.clock.Now()
		updated := scheduler.ApplyOutcome(*card, rating, now)

		if err := s.db.SaveCard(updated); err != nil {
			slog.Error("Error saving card after review", "card_id", id, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// A lost event only dents the history charts; the card itself is
		// already rescheduled, so log and carry on.
		if err := s.db.AppendEvent(domain.ReviewEvent{
			DeckID:      card.DeckID,
			CardID:      card.ID,
			Performance: rating.Performance(),
			ReviewedAt:  now,
		}); err != nil {
			slog.Warn("Failed to append review event", "card_id", id, "error", err)
		}

		s.mu.Lock()
		if err := s.study.Record(rating); err != nil {
			s.mu.Unlock()
			slog.Warn("Review recorded outside an active session", "card_id", id, "error", err)
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if len(s.queue) > 0 && s.queue[0].ID == card.ID {
			s.queue = s.queue[1:]
		}
		done := s.study.State() == session.Complete
		deckID := s.deckID
		s.mu.Unlock()

		if done {
			s.snapshotDeckStats(deckID, now)
		}

		s.renderCurrentCard(w)
	}
}

// snapshotDeckStats writes the projected deck summary after a completed
// session. The snapshot is denormalized dashboard data; a failed write only
// leaves the dashboard stale until the next session, so log and move on.
func (s *Server) snapshotDeckStats(deckID string, now time.Time) {
	if deckID == "" {
		return
	}
	cards, err := s.db.GetCardsByDeckID(deckID)
	if err != nil {
		slog.Warn("Failed to load cards for deck stats snapshot", "deck_id", deckID, "error", err)
		return
	}
	if err := s.db.SaveDeckStats(deckID, deckstats.Project(cards, now), now); err != nil {
		slog.Warn("Failed to save deck stats snapshot", "deck_id", deckID, "error", err)
	}
}

// handleDashboard renders the stats page: per-deck projections, daily review
// history, and the current streak.
func (s *Server) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.db.LoadEvents(time.Time{})
		if err != nil {
			slog.Error("Error loading review events", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		summary := history.Aggregate(events, s.clock.Now())

		decks, err := s.db.ListDecks()
		if err != nil {
			slog.Error("Error listing decks", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		now := s.clock.Now()
		views := make([]deckView, 0, len(decks))
		for _, d := range decks {
			cards, err := s.db.GetCardsByDeckID(d.ID)
			if err != nil {
				slog.Error("Error loading cards for deck", "deck_id", d.ID, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			views = append(views, deckView{ID: d.ID, Name: d.Name, Stats: deckstats.Project(cards, now)})
		}

		s.templates.ExecuteTemplate(w, "dashboard", map[string]interface{}{
			"Streak": summary.Streak,
			"Daily":  summary.Daily,
			"Decks":  views,
		})
	}
}

// handleHeatmap serves daily review counts as JSON for the calendar heatmap.
func (s *Server) handleHeatmap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := s.db.LoadEvents(time.Time{})
		if err != nil {
			slog.Error("Error loading review events", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		summary := history.Aggregate(events, s.clock.Now())

		counts := make(map[string]int, len(summary.Daily))
		for _, day := range summary.Daily {
			counts[history.DayKey(day.Date)] = day.Reviews
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(counts); err != nil {
			slog.Error("Error encoding heatmap", "error", err)
		}
	}
}

// handlePostSync triggers a manual sync and re-renders the source list.
func (s *Server) handlePostSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Run in the foreground to make the user wait
		if err := syncer.Run(s.db, s.reposDir, s.clock.Now()); err != nil {
			slog.Error("Sync failed", "error", err)
			http.Error(w, "Sync failed", http.StatusInternalServerError)
			return
		}

		// Re-render the source list to be swapped by HTMX
		sources, err := s.db.GetAllSources()
		if err != nil {
			slog.Error("Error getting sources after sync", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Sources": sources,
		}

		// Render both the success message and the updated list
		s.templates.ExecuteTemplate(w, "sync_success", nil)
		s.templates.ExecuteTemplate(w, "source_list", data)
	}
}

// handleSources handles both GET and POST for the sources page.
func (s *Server) handleSources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSources(w, r)
		case http.MethodPost:
			s.handlePostSource(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleGetSources renders the main sources management page.
func (s *Server) handleGetSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.GetAllSources()
	if err != nil {
		slog.Error("Error getting sources", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Sources": sources,
	}
	s.templates.ExecuteTemplate(w, "sources", data)
}

// handlePostSource adds a new source and re-renders the source list.
func (s *Server) handlePostSource(w http.ResponseWriter, r *http.Request) {
	path := r.PostFormValue("path")
	if path == "" {
		http.Error(w, "Path cannot be empty", http.StatusBadRequest)
		return
	}

	if _, err := syncer.AddSource(s.db, path, s.clock.Now()); err != nil {
		slog.Error("Error adding new source", "path", path, "error", err)
		http.Error(w, "Failed to add source", http.StatusInternalServerError)
		return
	}

	// Re-render the source list to be swapped by HTMX
	sources, err := s.db.GetAllSources()
	if err != nil {
		slog.Error("Error getting sources after add", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Sources": sources,
	}
	s.templates.ExecuteTemplate(w, "source_list", data)
}

// handleDeleteSource deletes a source and re-renders the source list.
func (s *Server) handleDeleteSource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		idStr := strings.TrimPrefix(r.URL.Path, "/sources/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid source ID", http.StatusBadRequest)
			return
		}

		if err := s.db.DeleteSource(id); err != nil {
			slog.Error("Error deleting source", "source_id", id, "error", err)
			http.Error(w, "Failed to delete source", http.StatusInternalServerError)
			return
		}

		// Re-render the source list to be swapped by HTMX
		sources, err := s.db.GetAllSources()
		if err != nil {
			slog.Error("Error getting sources after delete", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data := map[string]interface{}{
			"Sources": sources,
		}
		s.templates.ExecuteTemplate(w, "source_list", data)
	}
}
