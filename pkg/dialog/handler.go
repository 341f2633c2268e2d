package dialog

// ChoiceHandler receives the 1-based index of the option picked in a choice
// dialog.
type ChoiceHandler interface {
	HandleChoice(choice int)
}

// ChoiceHandlerFunc adapts a function to [ChoiceHandler].
type ChoiceHandlerFunc func(choice int)

// HandleChoice calls f(choice).
func (f ChoiceHandlerFunc) HandleChoice(choice int) {
	f(choice)
}

// InputHandler receives the text entered in an input dialog.
type InputHandler interface {
	HandleInput(text string)
}

// InputHandlerFunc adapts a function to [InputHandler].
type InputHandlerFunc func(text string)

// HandleInput calls f(text).
func (f InputHandlerFunc) HandleInput(text string) {
	f(text)
}

func isNilChoiceHandler(h ChoiceHandler) bool {
	if h == nil {
		return true
	}

	f, ok := h.(ChoiceHandlerFunc)

	return ok && f == nil
}

func isNilInputHandler(h InputHandler) bool {
	if h == nil {
		return true
	}

	f, ok := h.(InputHandlerFunc)

	return ok && f == nil
}
