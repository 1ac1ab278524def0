package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// PromptText is printed before a rule is read from the operator.
const PromptText = "enter rule as birth/survive/decay, e.g. 3/23/0/ (decay 0 disables fading)"

// Prompter reads rule text from a line-oriented reader on request. The read
// blocks, so it runs on its own goroutine and posts the result to the queue.
type Prompter struct {
	mu   sync.Mutex
	in   *bufio.Reader
	out  io.Writer
	q    *Queue
	busy atomic.Bool
}

// NewPrompter wires a prompter to the given input, echo output, and queue.
func NewPrompter(in io.Reader, out io.Writer, q *Queue) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, q: q}
}

// Pending reports whether a prompt is waiting for input.
func (p *Prompter) Pending() bool { return p.busy.Load() }

// Request starts a prompt unless one is already outstanding. done, when not
// nil, receives the read error (nil on success) once the line is queued.
func (p *Prompter) Request(done func(error)) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer p.busy.Store(false)
		line, err := p.ReadLine()
		if err == nil && !p.q.Push(Command{Kind: EditRule, Text: line}) {
			err = errors.New("control: command queue full")
		}
		if done != nil {
			done(err)
		}
	}()
	return true
}

// ReadLine prints the prompt and blocks for one line of input.
func (p *Prompter) ReadLine() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out != nil {
		fmt.Fprintln(p.out, PromptText)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadRules queues every non-empty line of r as an EditRule command until r
// is exhausted or ctx is cancelled. Cancellation is observed between lines.
func ReadRules(ctx context.Context, r io.Reader, q *Queue) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !q.Push(Command{Kind: EditRule, Text: line}) {
			return errors.New("control: command queue full")
		}
	}
	return sc.Err()
}
