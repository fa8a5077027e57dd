package tui

// redrawMsg tells the model a newer snapshot is available.
type redrawMsg struct{}

// quitMsg asks the program to exit.
type quitMsg struct{}
