package harvester

import "io"

// Fetcher produces a complete markup snapshot for one page URL. The
// extraction core never learns which fetch strategy produced a snapshot.
type Fetcher interface {
	Fetch(url string) (io.Reader, error)
}

// FetchFunc adapts a plain function to the Fetcher interface
type FetchFunc func(url string) (io.Reader, error)

// Fetch implements Fetcher
func (f FetchFunc) Fetch(url string) (io.Reader, error) {
	return f(url)
}
