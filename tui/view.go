// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

// Line counts of the play view around the surface.
const (
	headerLines      = 4
	overlayLines     = 3
	footerLines      = 2
	minSurfaceHeight = 3
)

// rect is a screen region in terminal cells.
type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// seconds maps column x on a horizontal bar onto [0, max].
func (r rect) seconds(x int, max float64) float64 {
	if r.width <= 1 {
		return 0
	}
	fraction := lo.Clamp(float64(x-r.x)/float64(r.width-1), 0, 1)
	return fraction * max
}

// layout returns the surface and progress bar regions in screen coordinates.
func (b *statefulBubble) layout() (surface, bar rect) {
	top, left := paddingStyle.GetPaddingTop(), paddingStyle.GetPaddingLeft()

	surface = rect{
		x:      left,
		y:      top + headerLines,
		width:  b.width,
		height: max(b.height-headerLines-overlayLines-footerLines, minSurfaceHeight),
	}
	bar = rect{
		x:      left,
		y:      surface.y + surface.height,
		width:  b.width,
		height: 1,
	}
	return surface, bar
}

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case pickState:
		output = b.viewPick()
	case loadingState:
		output = b.viewLoading()
	case playState:
		output = b.viewPlay()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewPick() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Open Video"),
			"",
			style.Faint(fmt.Sprintf("%s room %d", b.roleTag(), b.options.Session.RoomID)),
			"",
			b.inputC.View(),
		},
	)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			style.Truncate(b.width)(b.spinnerC.View() + " Fingerprinting " + style.Fg(color.Purple)(b.loadingPath)),
		},
	)
}

func (b *statefulBubble) viewPlay() string {
	snapshot := b.controller.Snapshot()
	surface, _ := b.layout()

	var name string
	if snapshot.Source != nil {
		name = snapshot.Source.File.Name
	}

	lines := []string{
		style.Title("Now Playing") + " " + style.Faint(fmt.Sprintf("%s room %d", b.roleTag(), snapshot.Session.RoomID)),
		"",
		style.Truncate(b.width)(icon.Get(icon.Film) + " " + style.Fg(color.Purple)(name)),
		"",
		lipgloss.Place(b.width, surface.height, lipgloss.Center, lipgloss.Center, b.viewSurface(snapshot)),
	}

	return b.renderLines(true, append(lines, b.viewOverlay(snapshot)...))
}

// viewSurface is what the rendering surface shows in place of the picture.
func (b *statefulBubble) viewSurface(snapshot controller.Snapshot) string {
	var status string

	switch {
	case snapshot.Seek.Active:
		status = fmt.Sprintf("%s Seeking to %s", icon.Get(icon.Progress), controller.FormatTime(snapshot.Seek.PendingTime))
	case snapshot.Phase == controller.PhaseLoading:
		status = b.spinnerC.View() + " Loading"
	case snapshot.Phase == controller.PhasePlaying:
		status = fmt.Sprintf("%s %s", icon.Get(icon.Play), controller.FormatTime(snapshot.State.CurrentTime))
	case snapshot.Phase == controller.PhaseEnded:
		status = icon.Get(icon.Ended) + " Ended"
	case snapshot.Phase == controller.PhaseReady:
		status = icon.Get(icon.Pause) + " Paused"
	default:
		status = "No media"
	}

	if snapshot.State.IsFullscreen {
		status += "  " + icon.Get(icon.Fullscreen)
	}

	return style.Bold(status)
}

// viewOverlay renders the control overlay. Viewers and hidden controls get blank lines of the
// same height so the surface never moves.
func (b *statefulBubble) viewOverlay(snapshot controller.Snapshot) []string {
	if !snapshot.Session.IsOwner || !snapshot.Controls.Visible {
		return lo.Times(overlayLines, func(int) string {
			return strings.Repeat(" ", max(b.width, 0))
		})
	}

	times := fmt.Sprintf(
		"%s / %s",
		controller.FormatTime(snapshot.DisplayTime()),
		controller.FormatTime(snapshot.State.Duration),
	)

	playIcon := icon.Get(icon.Play)
	if snapshot.State.IsPlaying {
		playIcon = icon.Get(icon.Pause)
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.VolumeUp), int(math.Round(snapshot.State.Volume*100)))
	if snapshot.Muted() {
		volume = icon.Get(icon.VolumeOff) + " muted"
	}

	controls := []string{playIcon, volume}
	if snapshot.State.IsFullscreen {
		controls = append(controls, icon.Get(icon.Fullscreen))
	}

	return []string{
		b.progressC.ViewAs(snapshot.Progress() / 100),
		style.Fg(color.White)(times),
		strings.Join(controls, "   "),
	}
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Playback failed: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) roleTag() string {
	if b.options.Session.IsOwner {
		return icon.Get(icon.Owner) + " owner"
	}
	return icon.Get(icon.Viewer) + " viewer"
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
