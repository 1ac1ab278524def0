package control

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue(4)
	q.Push(Command{Kind: TogglePause})
	q.Push(Command{Kind: EditRule, Text: "3/23/4/"})
	q.Push(Command{Kind: StepOnce})

	var got []Kind
	n := q.Drain(func(c Command) { got = append(got, c.Kind) })
	if n != 3 || len(got) != 3 {
		t.Fatalf("drained %d commands", n)
	}
	if got[0] != TogglePause || got[1] != EditRule || got[2] != StepOnce {
		t.Fatalf("unexpected order %v", got)
	}
	if q.Drain(func(Command) {}) != 0 {
		t.Fatal("second drain should be empty")
	}
}

func TestQueuePushFull(t *testing.T) {
	q := NewQueue(1)
	if !q.Push(Command{}) {
		t.Fatal("first push should succeed")
	}
	if q.Push(Command{}) {
		t.Fatal("push into a full queue should fail without blocking")
	}
}

func TestPrompterQueuesOneLine(t *testing.T) {
	q := NewQueue(4)
	var out strings.Builder
	p := NewPrompter(strings.NewReader("36/23/5/\n2//2/\n"), &out, q)

	done := make(chan error, 1)
	if !p.Request(func(err error) { done <- err }) {
		t.Fatal("request refused")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("prompt failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not finish")
	}

	var cmds []Command
	q.Drain(func(c Command) { cmds = append(cmds, c) })
	if len(cmds) != 1 || cmds[0].Kind != EditRule || cmds[0].Text != "36/23/5/" {
		t.Fatalf("unexpected commands %+v", cmds)
	}
	if !strings.Contains(out.String(), "birth/survive/decay") {
		t.Fatalf("prompt not printed: %q", out.String())
	}
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("3/23/1/"), nil, NewQueue(1))
	line, err := p.ReadLine()
	if err != nil || line != "3/23/1/" {
		t.Fatalf("line=%q err=%v", line, err)
	}
	if _, err := p.ReadLine(); err == nil {
		t.Fatal("expected EOF on exhausted input")
	}
}

func TestReadRulesSkipsBlankLines(t *testing.T) {
	q := NewQueue(8)
	err := ReadRules(context.Background(), strings.NewReader("3/23/0/\n\n  36/23/4/  \n"), q)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	q.Drain(func(c Command) { texts = append(texts, c.Text) })
	if len(texts) != 2 || texts[0] != "3/23/0/" || texts[1] != "36/23/4/" {
		t.Fatalf("unexpected texts %q", texts)
	}
}
