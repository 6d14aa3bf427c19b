// ABOUTME: Tests for vote bar, count block and badge widgets
// ABOUTME: Checks cell arithmetic and rendered display widths

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/tui/icons"
)

func TestLikeCells(t *testing.T) {
	tests := []struct {
		name         string
		likes, hates int
		width        int
		want         int
	}{
		{"no votes", 0, 0, 10, 0},
		{"all likes", 4, 0, 10, 10},
		{"all hates", 0, 4, 10, 0},
		{"even split", 5, 5, 10, 5},
		{"tiny like share still shows", 1, 99, 10, 1},
		{"tiny hate share still shows", 99, 1, 10, 9},
		{"zero width", 3, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LikeCells(tt.likes, tt.hates, tt.width); got != tt.want {
				t.Errorf("LikeCells(%d, %d, %d) = %d, want %d", tt.likes, tt.hates, tt.width, got, tt.want)
			}
		})
	}
}

func TestVoteBar_Width(t *testing.T) {
	cfg := DefaultVoteBarConfig()
	cfg.Width = 12

	for _, votes := range [][2]int{{0, 0}, {3, 1}, {0, 7}} {
		bar := VoteBar(votes[0], votes[1], cfg)
		// Brackets add two cells
		if w := lipgloss.Width(bar); w != 14 {
			t.Errorf("likes=%d hates=%d: expected width 14, got %d", votes[0], votes[1], w)
		}
	}
}

func TestVoteCounts(t *testing.T) {
	out := VoteCounts(3, 1, client.ReactionNone)
	if !strings.Contains(out, "3") || !strings.Contains(out, "1") {
		t.Errorf("Expected both counts in %q", out)
	}
}

func TestCountBlock_LinesHaveConfiguredWidth(t *testing.T) {
	cfg := DefaultCountBlockConfig()
	cfg.Width = 20

	block := CountBlock(icons.Like, "Likes", 12, "75% of votes", cfg)
	lines := strings.Split(block, "\n")

	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %q: expected width 20, got %d", line, w)
		}
	}
	if !strings.Contains(block, "12") {
		t.Error("Expected count in block")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a very long subtitle", 9, "a very..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestReactionBadge(t *testing.T) {
	if got := ReactionBadge(client.ReactionNone); got != "" {
		t.Errorf("Expected no badge without a reaction, got %q", got)
	}
	if got := ReactionBadge(client.Like); !strings.Contains(got, "You like this") {
		t.Errorf("Unexpected like badge %q", got)
	}
	if got := ReactionBadge(client.Hate); !strings.Contains(got, "You hate this") {
		t.Errorf("Unexpected hate badge %q", got)
	}
}

func TestLevelForKind(t *testing.T) {
	tests := []struct {
		kind notify.Kind
		want StatusLevel
	}{
		{notify.Success, StatusOK},
		{notify.Error, StatusCritical},
		{notify.Warning, StatusWarning},
		{notify.Info, StatusInfo},
		{notify.Kind("other"), StatusNeutral},
	}
	for _, tt := range tests {
		if got := LevelForKind(tt.kind); got != tt.want {
			t.Errorf("LevelForKind(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
