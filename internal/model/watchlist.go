package model

// WatchGroup is one section of the watch-list file. TrendFiltered marks
// groups whose alerts additionally require the price to sit below the
// 200-session average.
type WatchGroup struct {
	Name          string
	Symbols       []string
	TrendFiltered bool
}
