package model

// UIComponentKind selects how a notification is presented.
type UIComponentKind int

const (
	// ComponentDialog is shown as a modal that the user dismisses.
	ComponentDialog UIComponentKind = iota
	// ComponentToast is shown as a one-line banner that the user dismisses.
	ComponentToast
	// ComponentNone is never shown; it is logged only.
	ComponentNone
)

// String returns the lowercase kind name.
func (k UIComponentKind) String() string {
	switch k {
	case ComponentDialog:
		return "dialog"
	case ComponentToast:
		return "toast"
	case ComponentNone:
		return "none"
	default:
		return "unknown"
	}
}

// UIComponent is a user-facing notification queued for display.
type UIComponent struct {
	Kind    UIComponentKind
	Title   string
	Message string
}

// Dialog builds a dialog notification.
func Dialog(title, message string) UIComponent {
	return UIComponent{Kind: ComponentDialog, Title: title, Message: message}
}

// Toast builds a toast notification.
func Toast(message string) UIComponent {
	return UIComponent{Kind: ComponentToast, Message: message}
}

// None builds a silent notification.
func None(message string) UIComponent {
	return UIComponent{Kind: ComponentNone, Message: message}
}

// IsSilent reports whether the component must never be displayed.
func (c UIComponent) IsSilent() bool {
	return c.Kind == ComponentNone
}

// UIComponentState is the visibility of a dialog.
type UIComponentState int

const (
	Hide UIComponentState = iota
	Show
)

// NetworkState reports backend connectivity as last observed.
type NetworkState int

const (
	NetworkGood NetworkState = iota
	NetworkFailed
)

func (s NetworkState) String() string {
	if s == NetworkFailed {
		return "failed"
	}
	return "good"
}

// ProgressBarState is the loading indicator of a screen.
type ProgressBarState int

const (
	ProgressIdle ProgressBarState = iota
	// ProgressLoading covers a whole-screen fetch.
	ProgressLoading
	// ProgressButtonLoading covers a mutation started from a button or form.
	ProgressButtonLoading
)

// IsLoading reports whether any operation is in progress.
func (p ProgressBarState) IsLoading() bool {
	return p != ProgressIdle
}
