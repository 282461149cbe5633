package tui

import (
	"github.com/gdamore/tcell/v2"

	"mineview/internal/log"
)

// InputHandler maps global keys to application actions
type InputHandler struct {
	modalVisible bool

	onReload     func()
	onExit       func()
	onNextFocus  func()
	onCloseModal func()
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// SetCallbacks sets the callback functions
func (ih *InputHandler) SetCallbacks(
	onReload func(),
	onExit func(),
	onNextFocus func(),
	onCloseModal func(),
) {
	ih.onReload = onReload
	ih.onExit = onExit
	ih.onNextFocus = onNextFocus
	ih.onCloseModal = onCloseModal
}

// SetModalVisible sets the modal visibility state
func (ih *InputHandler) SetModalVisible(visible bool) {
	ih.modalVisible = visible
}

// HandleKeyEvent is installed as the application input capture. It returns
// nil for keys it consumed.
func (ih *InputHandler) HandleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if ih.modalVisible {
		if event.Key() == tcell.KeyEscape {
			call(ih.onCloseModal)
			return nil
		}
		// the modal handles its own buttons
		return event
	}

	switch event.Key() {
	case tcell.KeyCtrlC:
		call(ih.onExit)
		return nil
	case tcell.KeyF5:
		call(ih.onReload)
		return nil
	case tcell.KeyTab:
		call(ih.onNextFocus)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			call(ih.onExit)
			return nil
		case 'r', 'R':
			log.Debug("reload requested from keyboard")
			call(ih.onReload)
			return nil
		}
	}
	return event
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
