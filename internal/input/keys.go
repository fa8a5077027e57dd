package input

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	interrupt key.Binding
	backspace key.Binding
	older     key.Binding
	newer     key.Binding
	submit    key.Binding
	space     key.Binding
}

var keys = keyMap{
	interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
	backspace: key.NewBinding(key.WithKeys("backspace")),
	older:     key.NewBinding(key.WithKeys("up")),
	newer:     key.NewBinding(key.WithKeys("down")),
	submit:    key.NewBinding(key.WithKeys("enter")),
	space:     key.NewBinding(key.WithKeys(" ")),
}
