package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# cropall

Pick the part of each image to keep. Pixels outside the frame are dimmed.

| Key | Action |
| --- | --- |
| ←→↑↓ / hjkl | move the active edge, or the whole frame |
| tab / shift+tab | cycle the active edge: left, top, right, bottom, move |
| + / - | grow or shrink every edge |
| a | detect scanner borders |
| r | back to the suggested crop |
| f | full frame |
| enter | crop and go to the next image |
| s | skip this image |
| q / esc | stop; remaining images are left alone |

One key press moves an edge by ` + "`step_percent`" + ` of the image. With an
` + "`aspect_ratio`" + ` set, the other dimension follows.

Press **?** or **esc** to return.
`

func renderHelp(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
