package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/term"
)

const banner = `          ___                 _
 ___  ___|_  )_ _ ___ _ __| |__ _ _  _ ___
(_-< / _| / /| '_/ -_) '_ \ / _` + "`" + ` | || (_-<
/__/ \__|/___|_| \___| .__/_\__,_|\_, /__/
                     |_|          |__/`

// PrintBanner writes the ASCII banner and version line to w.
func PrintBanner(w io.Writer, version string) {
	for _, l := range strings.Split(banner, "\n") {
		fmt.Fprintln(w, term.Accent.Render(l))
	}
	fmt.Fprintln(w, term.Dim.Render("  StarCraft II replay organizer v"+version))
	fmt.Fprintln(w)
}
