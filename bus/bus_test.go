// bus/bus_test.go
package bus

import (
	"context"
	"testing"
	"time"
)

func recvOne(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("config", "ledhal"))

	conn.Publish(conn.NewMessage(T("config", "ledhal"), "hello", false))

	if got := recvOne(t, sub); got.Payload.(string) != "hello" {
		t.Errorf("expected payload 'hello', got %v", got.Payload)
	}
}

func TestNoDeliveryOnOtherTopic(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("ledhal", "led", 0, "value"))
	conn.Publish(conn.NewMessage(T("ledhal", "led", 1, "value"), 42, false))

	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected message: %+v", m)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("ledhal", "state"), "persist", true))

	sub := conn.Subscribe(T("ledhal", "state"))

	if got := recvOne(t, sub); got.Payload.(string) != "persist" {
		t.Errorf("expected retained payload 'persist', got %v", got.Payload)
	}
}

func TestRetainedCleared(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("ledhal", "led", 3, "info"), "doc", true))
	conn.Publish(conn.NewMessage(T("ledhal", "led", 3, "info"), nil, true))

	sub := conn.Subscribe(T("ledhal", "led", 3, "info"))
	select {
	case m := <-sub.Channel():
		t.Fatalf("expected no retained message, got %+v", m)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestWildcardSingleLevel(t *testing.T) {
	b := NewBus(16)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("ledhal", "led", Plus, "value"))

	conn.Publish(conn.NewMessage(T("ledhal", "led", 0, "value"), 10, false))
	conn.Publish(conn.NewMessage(T("ledhal", "led", 5, "value"), 20, false))
	// Wrong depth: must not match.
	conn.Publish(conn.NewMessage(T("ledhal", "led", "value"), 30, false))

	got := []int{recvOne(t, sub).Payload.(int), recvOne(t, sub).Payload.(int)}
	if got[0] != 10 || got[1] != 20 {
		t.Errorf("unexpected payloads: %v", got)
	}
	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected extra message: %+v", m)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestWildcardRest(t *testing.T) {
	b := NewBus(16)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("ledhal", Hash))

	conn.Publish(conn.NewMessage(T("ledhal", "state"), 1, false))
	conn.Publish(conn.NewMessage(T("ledhal", "led", 2, "value"), 2, false))
	conn.Publish(conn.NewMessage(T("config", "ledhal"), 3, false))

	if got := recvOne(t, sub).Payload.(int); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := recvOne(t, sub).Payload.(int); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	select {
	case m := <-sub.Channel():
		t.Fatalf("hash wildcard leaked across root: %+v", m)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestRetainedUnderWildcard(t *testing.T) {
	b := NewBus(16)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("ledhal", "led", 0, "info"), "a", true))
	conn.Publish(conn.NewMessage(T("ledhal", "led", 1, "info"), "b", true))

	sub := conn.Subscribe(T("ledhal", "led", Plus, "info"))

	seen := map[string]bool{}
	seen[recvOne(t, sub).Payload.(string)] = true
	seen[recvOne(t, sub).Payload.(string)] = true
	if !seen["a"] || !seen["b"] {
		t.Errorf("missing retained deliveries: %v", seen)
	}
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("svc")
	cli := b.NewConnection("cli")

	reqSub := svc.Subscribe(T("ledhal", "led", 0, "control", "get"))
	repSub := cli.Subscribe(T("reply", "cli", 1))

	cli.Publish(&Message{
		Topic:   T("ledhal", "led", 0, "control", "get"),
		Payload: nil,
		ReplyTo: T("reply", "cli", 1),
	})

	req := recvOne(t, reqSub)
	svc.Reply(req, "level=7", false)

	if got := recvOne(t, repSub); got.Payload.(string) != "level=7" {
		t.Errorf("unexpected reply payload: %v", got.Payload)
	}
}

func TestRequestWait(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("svc")
	cli := b.NewConnection("cli")

	reqSub := svc.Subscribe(T("ledhal", "led", 0, "control", "get"))
	go func() {
		req := <-reqSub.Channel()
		svc.Reply(req, "ok", false)
	}()

	reply, err := cli.RequestWait(context.Background(),
		cli.NewMessage(T("ledhal", "led", 0, "control", "get"), nil, false))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if reply.Payload.(string) != "ok" {
		t.Errorf("unexpected reply payload: %v", reply.Payload)
	}
}

func TestRequestWaitTimeout(t *testing.T) {
	b := NewBus(4)
	cli := b.NewConnection("cli")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := cli.RequestWait(ctx, cli.NewMessage(T("nobody", "home"), nil, false)); err == nil {
		t.Fatal("expected context error for unanswered request")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("ledhal", "state"))
	sub.Unsubscribe()

	// Publish after unsubscribe; channel is closed, no panic expected.
	conn.Publish(conn.NewMessage(T("ledhal", "state"), "x", false))

	if _, ok := <-sub.Channel(); ok {
		t.Fatal("expected closed channel after unsubscribe")
	}
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("ledhal", "led", 0, "value"))
	for i := 0; i < 5; i++ {
		conn.Publish(conn.NewMessage(T("ledhal", "led", 0, "value"), i, false))
	}

	// Oldest messages dropped; latest retained in the queue.
	last := -1
	for {
		select {
		case m := <-sub.Channel():
			last = m.Payload.(int)
			continue
		case <-time.After(30 * time.Millisecond):
		}
		break
	}
	if last != 4 {
		t.Errorf("expected newest message 4 to survive, got %d", last)
	}
}
