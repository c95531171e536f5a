// Package game implements the letter-guessing game over a company name:
// masking, guess transitions, win/lose detection, and the in-memory session
// store.
package game

import (
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/alexmalwine/portfolio-backend/models"
)

// Game statuses
const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusLost       = "lost"
)

// HintThreshold is the guesses-left count at which the company hint unlocks.
// Progressive disclosure: the hint helps a struggling player, it never
// trivializes a fresh game.
const HintThreshold = 2

var letterPattern = regexp.MustCompile(`^[A-Z]$`)

// Game is one active guessing session. Mutated only through ApplyGuess.
type Game struct {
	mu sync.Mutex

	ID               string
	Company          string // ground truth, immutable
	MaskedCompany    string
	GuessesLeft      int
	MaxGuesses       int
	GuessedLetters   []string
	IncorrectGuesses []string
	Status           string
	Job              models.RankedJob
	CreatedAt        time.Time
	SelectionSummary string
}

// Snapshot is a consistent read of game state after a transition
type Snapshot struct {
	ID               string
	Status           string
	MaskedCompany    string
	GuessesLeft      int
	MaxGuesses       int
	GuessedLetters   []string
	IncorrectGuesses []string
	AlreadyGuessed   bool
	HintUnlocked     bool
	Company          string
	Job              models.RankedJob
	SelectionSummary string
}

// NewGame seeds a session around one selected job
func NewGame(job models.RankedJob, maxGuesses int, summary string, now time.Time) *Game {
	return &Game{
		ID:               uuid.NewString(),
		Company:          job.Company,
		MaskedCompany:    MaskCompanyName(job.Company, nil),
		GuessesLeft:      maxGuesses,
		MaxGuesses:       maxGuesses,
		Status:           StatusInProgress,
		Job:              job,
		CreatedAt:        now,
		SelectionSummary: summary,
	}
}

// MaskCompanyName reveals every occurrence of the guessed letters; remaining
// letters become underscores and non-letter characters always show verbatim.
func MaskCompanyName(company string, guessed []string) string {
	guessedSet := make(map[rune]bool, len(guessed))
	for _, g := range guessed {
		for _, r := range g {
			guessedSet[unicode.ToUpper(r)] = true
		}
	}

	var b strings.Builder
	for _, r := range company {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
		case guessedSet[unicode.ToUpper(r)]:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// NormalizeLetter validates and canonicalizes a guess to one uppercase letter
func NormalizeLetter(raw string) (string, error) {
	letter := strings.ToUpper(strings.TrimSpace(raw))
	if !letterPattern.MatchString(letter) {
		return "", &models.ValidationError{Field: "letter", Message: "guess must be a single letter A-Z"}
	}
	return letter, nil
}

// ApplyGuess runs one guess transition. Terminal games are idempotent: the
// current state comes back unchanged and the guess is not consumed.
func (g *Game) ApplyGuess(rawLetter string) (Snapshot, error) {
	letter, err := NormalizeLetter(rawLetter)
	if err != nil {
		return Snapshot{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusInProgress {
		return g.snapshotLocked(false), nil
	}

	for _, prev := range g.GuessedLetters {
		if prev == letter {
			return g.snapshotLocked(true), nil
		}
	}

	g.GuessedLetters = append(g.GuessedLetters, letter)
	if !strings.Contains(strings.ToUpper(g.Company), letter) {
		g.IncorrectGuesses = append(g.IncorrectGuesses, letter)
		if g.GuessesLeft > 0 {
			g.GuessesLeft--
		}
	}
	g.MaskedCompany = MaskCompanyName(g.Company, g.GuessedLetters)

	switch {
	case !strings.Contains(g.MaskedCompany, "_"):
		g.Status = StatusWon
	case g.GuessesLeft == 0:
		g.Status = StatusLost
	}

	return g.snapshotLocked(false), nil
}

// State returns a read-only snapshot without consuming a guess
func (g *Game) State() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked(false)
}

func (g *Game) snapshotLocked(alreadyGuessed bool) Snapshot {
	return Snapshot{
		ID:               g.ID,
		Status:           g.Status,
		MaskedCompany:    g.MaskedCompany,
		GuessesLeft:      g.GuessesLeft,
		MaxGuesses:       g.MaxGuesses,
		GuessedLetters:   append([]string(nil), g.GuessedLetters...),
		IncorrectGuesses: append([]string(nil), g.IncorrectGuesses...),
		AlreadyGuessed:   alreadyGuessed,
		HintUnlocked:     g.Status == StatusInProgress && g.GuessesLeft <= HintThreshold,
		Company:          g.Company,
		Job:              g.Job,
		SelectionSummary: g.SelectionSummary,
	}
}
