package syncer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/revisehq/revise/internal/fingerprint"
	"github.com/revisehq/revise/internal/gitsource"
	"github.com/revisehq/revise/internal/parser"
	"github.com/revisehq/revise/internal/storage"
)

// AddSource registers a new card source and creates the deck it feeds. The
// source type is inferred from the path: anything that looks like a git URL
// is cloned under reposDir on sync, everything else is a local directory.
func AddSource(db *storage.DB, path string, now time.Time) (*storage.Source, error) {
	sourceType := "local"
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") || strings.HasPrefix(path, "https://") {
		sourceType = "git"
	}

	if existing, err := db.FindSourceByPath(path); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("source already registered: %s", path)
	}

	deck, err := db.CreateDeck(deckNameFor(path), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck for source %s: %w", path, err)
	}
	return db.InsertSource(path, sourceType, deck.ID)
}

// deckNameFor derives a readable deck name from a source path or URL.
func deckNameFor(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".git")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}

// Run iterates over all sources and reconciles each into its deck.
func Run(db *storage.DB, reposDir string, now time.Time) error {
	slog.Info("Starting sync process for all sources...")
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("failed to get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with --add-source <path/or/url.git>")
		return nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("Syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		sourceToReconcile := source

		if source.Type == "git" {
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}

			if err := gitsource.Sync(source.Path, localRepoPath); err != nil {
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}

			sourceToReconcile.Path = localRepoPath
		}

		reconcileLocalSource(db, &sourceToReconcile, now)
	}
	slog.Info("Sync process complete.")
	return nil
}

// reconcileLocalSource walks a directory of card files and brings the
// source's deck in line with it: new cards are inserted unscheduled, cards
// whose content hash is still present keep their scheduling state untouched,
// and cards no longer present are deleted.
func reconcileLocalSource(db *storage.DB, source *storage.Source, now time.Time) {
	var parsedCards int
	var syncErrors []error
	foundCardHashes := make(map[string]bool)

	walkErr := filepath.WalkDir(source.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			fileCards, parseErr := parser.ParseFile(path)
			if parseErr != nil {
				syncErrors = append(syncErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
			}
			for _, card := range fileCards {
				card.DeckID = source.DeckID
				card.Hash = fingerprint.Hash(card)
				parsedCards++
				foundCardHashes[card.Hash] = true

				existingCard, findErr := db.FindCardByHash(card.Hash)
				if findErr != nil {
					syncErrors = append(syncErrors, fmt.Errorf("db check for %s: %w", card.Hash, findErr))
					continue
				}
				if existingCard == nil {
					slog.Info("New card found, inserting...", "hash", card.Hash)
					if _, insertErr := db.InsertCard(card, source.ID); insertErr != nil {
						syncErrors = append(syncErrors, fmt.Errorf("db insert for %s: %w", card.Hash, insertErr))
					}
				}
			}
		}
		return nil
	})

	if walkErr != nil {
		slog.Error("Error walking directory", "path", source.Path, "error", walkErr)
		return
	}

	dbCards, err := db.GetCardsBySourceID(source.ID)
	if err != nil {
		slog.Error("Error getting cards for source", "source_id", source.ID, "error", err)
		return
	}

	var orphanedCards int
	for _, dbCard := range dbCards {
		if _, found := foundCardHashes[dbCard.Hash]; !found {
			slog.Info("Orphaned card, deleting", "hash", dbCard.Hash)
			orphanedCards++
			if err := db.DeleteCardByHash(dbCard.Hash); err != nil {
				slog.Warn("Failed to delete orphaned card", "hash", dbCard.Hash, "error", err)
			}
		}
	}

	if err := db.UpdateSourceLastSynced(source.ID, now); err != nil {
		slog.Warn("Failed to update last synced for source", "source_id", source.ID, "error", err)
	}

	slog.Info("reconciliation complete",
		"path", source.Path,
		"parsed_cards", parsedCards,
		"orphaned_deleted", orphanedCards,
		"errors", len(syncErrors),
	)
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
