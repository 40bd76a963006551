package tui

import "image"

// ---------------------------------------------------------------------------
// Layout — screen regions as rectangles, derived from size + mode + ratio.
// ---------------------------------------------------------------------------

const (
	toolbarRows = 1
	statusRows  = 1

	minSplitRatio = 20
	maxSplitRatio = 80
)

// layout holds the screen rectangles for the current frame. Zero-width rects
// mark panes hidden by the active mode.
type layout struct {
	toolbar image.Rectangle
	edit    image.Rectangle
	div     image.Rectangle // divider column, split mode only
	preview image.Rectangle
	status  image.Rectangle
}

// generateLayout derives pane rectangles. In split mode the edit pane takes
// ratio percent of the width, one column goes to the divider, and the preview
// pane takes the rest.
func generateLayout(width, height int, mode viewMode, ratio int) layout {
	contentTop := toolbarRows
	contentBottom := height - statusRows
	if contentBottom < contentTop {
		contentBottom = contentTop
	}

	ly := layout{
		toolbar: image.Rect(0, 0, width, toolbarRows),
		status:  image.Rect(0, contentBottom, width, height),
	}

	switch mode {
	case modeEdit:
		ly.edit = image.Rect(0, contentTop, width, contentBottom)
	case modePreview:
		ly.preview = image.Rect(0, contentTop, width, contentBottom)
	default: // modeSplit
		editW := width * ratio / 100
		if editW < 1 {
			editW = 1
		}
		if editW > width-2 {
			editW = width - 2
		}
		ly.edit = image.Rect(0, contentTop, editW, contentBottom)
		ly.div = image.Rect(editW, contentTop, editW+1, contentBottom)
		ly.preview = image.Rect(editW+1, contentTop, width, contentBottom)
	}
	return ly
}

// inRect reports whether the point x,y falls inside r.
func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}
