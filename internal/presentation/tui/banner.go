package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wordgraph banner shown by the interactive walk.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __        __            _                          _     `, "#818cf8"},
		{` \ \      / /__  _ __ __| | __ _ _ __ __ _ _ __ | |__  `, "#a78bfa"},
		{`  \ \ /\ / / _ \| '__/ _' |/ _' | '__/ _' | '_ \| '_ \ `, "#c084fc"},
		{`   \ V  V / (_) | | | (_| | (_| | | | (_| | |_) | | | |`, "#e879f9"},
		{`    \_/\_/ \___/|_|  \__,_|\__, |_|  \__,_| .__/|_| |_|`, "#f472b6"},
		{`                           |___/          |_|          `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
