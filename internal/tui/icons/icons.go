// ABOUTME: Glyphs for the movierama screens with Nerd Font and plain Unicode variants
// ABOUTME: Nerd Fonts are used only when the terminal is known or configured to have them

package icons

import (
	"os"
	"strings"
	"sync"
)

// nerdTerminals usually ship with a patched font.
var nerdTerminals = []string{"iterm.app", "alacritty", "wezterm", "kitty", "ghostty"}

var (
	detectOnce sync.Once
	nerd       bool
)

// Detect decides whether Nerd Font glyphs render, reading variables through
// getenv. MOVIERAMA_NERD_FONTS wins when set.
func Detect(getenv func(string) string) bool {
	if v := getenv("MOVIERAMA_NERD_FONTS"); v != "" {
		return v == "1" || strings.EqualFold(v, "true")
	}
	term := strings.ToLower(getenv("TERM_PROGRAM") + " " + getenv("TERM"))
	for _, t := range nerdTerminals {
		if strings.Contains(term, t) {
			return true
		}
	}
	return false
}

// HasNerdFonts reports the process-wide detection result.
func HasNerdFonts() bool {
	detectOnce.Do(func() { nerd = Detect(os.Getenv) })
	return nerd
}

// Icon is one glyph in both variants.
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	App  = Icon{"\U000F0FCE", "▶"} // nf-md-movie_open
	Film = Icon{"\U000F0381", "▣"} // nf-md-movie
	User = Icon{"\uF007", "☺"}     // nf-fa-user
	Date = Icon{"\uF073", "◷"}     // nf-fa-calendar
	Sort = Icon{"\U000F04BA", "⇅"} // nf-md-sort

	Like = Icon{"\uF164", "▲"} // nf-fa-thumbs_up
	Hate = Icon{"\uF165", "▼"} // nf-fa-thumbs_down

	// Toast kinds
	CheckOK  = Icon{"\uF00C", "✓"}
	Warning  = Icon{"\uF071", "⚠"}
	Critical = Icon{"\uF057", "✗"}
	Info     = Icon{"\uF05A", "ℹ"}
)
