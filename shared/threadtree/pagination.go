package threadtree

// HasMore reports whether posts beyond the loaded prefix exist.
func HasMore(loaded, total int) bool {
	return loaded < total
}

// NextPageSize is the prefix length to request after "load more".
// Pages are never appended: the caller refetches the whole larger prefix.
func NextPageSize(current, increment int) int {
	return current + increment
}

// Window is the pagination state of one thread view. It is a value, the
// caller keeps it between requests.
type Window struct {
	Size      int
	Increment int
}

// Next returns the window for the following "load more".
func (w Window) Next() Window {
	return Window{Size: NextPageSize(w.Size, w.Increment), Increment: w.Increment}
}

// Loaded is how many posts a fetch with this window returns for a thread of
// total posts.
func (w Window) Loaded(total int) int {
	return min(w.Size, total)
}

// HasMore reports whether a thread of total posts extends past the window.
func (w Window) HasMore(total int) bool {
	return HasMore(w.Loaded(total), total)
}
