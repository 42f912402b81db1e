package tui

type state int

const (
	searchState state = iota
	statsState
	errorState
)
