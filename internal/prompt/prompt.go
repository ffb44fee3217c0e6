// Package prompt reads answers and commands line by line from the user.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type line struct {
	text string
	err  error
}

// Prompt asks questions on out and reads replies from in. A single goroutine reads in, so an Ask can return as
// soon as its context is canceled while the read is still pending.
type Prompt struct {
	in          io.Reader
	out         io.Writer
	interactive bool

	start sync.Once
	stop  sync.Once
	lines chan line
	done  chan struct{}
}

// New returns a Prompt. When interactive is true, a prefill is shown as the default value of the question and an
// empty reply accepts it.
func New(in io.Reader, out io.Writer, interactive bool) *Prompt {
	return &Prompt{
		in:          in,
		out:         out,
		interactive: interactive,
		lines:       make(chan line),
		done:        make(chan struct{}),
	}
}

// Interactive reports whether prefills are offered.
func (p *Prompt) Interactive() bool {
	return p.interactive
}

// Ask writes text and waits for the next line of input, returned without surrounding whitespace. It returns io.EOF once the input is exhausted and the
// context error when ctx is canceled first.
func (p *Prompt) Ask(ctx context.Context, text, prefill string) (string, error) {
	p.start.Do(func() { go p.read() })

	label := text
	if p.interactive && prefill != "" {
		label = fmt.Sprintf("%s [%s]", text, prefill)
	}
	if _, err := fmt.Fprint(p.out, label+" "); err != nil {
		return "", fmt.Errorf("error writing prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		if l.text == "" && p.interactive {
			return prefill, nil
		}

		return l.text, nil
	}
}

// Close stops the reader goroutine once it has finished its current read.
func (p *Prompt) Close() error {
	p.stop.Do(func() { close(p.done) })

	return nil
}

func (p *Prompt) read() {
	defer close(p.lines)

	r := bufio.NewReader(p.in)
	for {
		text, err := r.ReadString('\n')
		if text != "" || err == nil {
			if !p.send(line{text: strings.TrimSpace(text)}) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			p.send(line{err: fmt.Errorf("error reading input: %w", err)})

			return
		}
	}
}

func (p *Prompt) send(l line) bool {
	select {
	case p.lines <- l:
		return true
	case <-p.done:
		return false
	}
}
