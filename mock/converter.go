package mock

import "github.com/fwojciec/libdoc"

var _ libdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of libdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
