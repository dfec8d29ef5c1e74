package tui

type state int

const (
	loadingState state = iota
	errorState
	searchState
	resultsState
	seasonsState
	episodesState
	streamsState
	playState
	historyState
	favoritesState
)
