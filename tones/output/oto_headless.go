//go:build headless

package output

import (
	"io"
)

// Oto is a no-op in headless builds, which link no audio libraries
type Oto struct {
	started bool
}

func NewOto(_ io.Reader, _ int) (*Oto, error) {
	return &Oto{}, nil
}

func (o *Oto) Start() error {
	o.started = true
	return nil
}

func (o *Oto) Stop()  { o.started = false }
func (o *Oto) Close() { o.started = false }

func (o *Oto) IsStarted() bool {
	return o.started
}
