package source_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxsml/oddeven/internal/test"
	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/source"
)

type sent struct {
	channel string
	msg     *message.Message
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (s *recordingSender) Send(ctx context.Context, channel string, msg *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sent{channel: channel, msg: msg})
	return nil
}

func (s *recordingSender) payloads() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.msg.Payload)
	}
	return out
}

func (s *recordingSender) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type recordingGateway struct {
	mu      sync.Mutex
	numbers []int
	err     error
}

func (g *recordingGateway) Submit(ctx context.Context, number int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.numbers = append(g.numbers, number)
	return g.err
}

func (g *recordingGateway) submitted() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.numbers...)
}

func TestCounter_Next(t *testing.T) {
	var c source.Counter
	for i := range 5 {
		assert.Equal(t, i, c.Next())
	}
}

func TestCounter_Concurrent(t *testing.T) {
	var c source.Counter
	const workers, perWorker = 8, 250

	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			local := make([]int, 0, perWorker)
			for range perWorker {
				local = append(local, c.Next())
			}
			mu.Lock()
			got = append(got, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(got)
	require.Len(t, got, workers*perWorker)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestGateway_Submit(t *testing.T) {
	sender := &recordingSender{}
	gw := source.NewGateway(sender, "number-channel")

	require.NoError(t, gw.Submit(context.Background(), -42))

	require.Equal(t, 1, sender.len())
	assert.Equal(t, "number-channel", sender.sent[0].channel)
	assert.Equal(t, -42, sender.sent[0].msg.Payload)
	assert.Equal(t, source.GatewaySource, sender.sent[0].msg.Source)
}

func TestGateway_SubmitFailure(t *testing.T) {
	cause := errors.New("queue full")
	gw := source.NewGateway(&recordingSender{err: cause}, "number-channel")

	err := gw.Submit(context.Background(), 7)

	assert.ErrorIs(t, err, source.ErrSubmission)
	assert.ErrorIs(t, err, cause)
}

func TestPoller_SendsConsecutiveNumbers(t *testing.T) {
	mock := clock.NewMock()
	logger := &test.Logger{}
	sender := &recordingSender{}
	p := source.NewPoller(&source.Counter{}, sender, source.PollerConfig{
		Channel: "number-channel",
		Period:  100 * time.Millisecond,
		Clock:   mock,
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done, err := p.Start(ctx)
	require.NoError(t, err)

	const ticks = 5
	for i := range ticks {
		mock.Add(100 * time.Millisecond)
		require.Eventually(t, func() bool { return sender.len() == i+1 }, time.Second, time.Millisecond)
	}

	cancel()
	<-done

	assert.Equal(t, []any{0, 1, 2, 3, 4}, sender.payloads())
	for _, s := range sender.sent {
		assert.Equal(t, "number-channel", s.channel)
		assert.Equal(t, source.CounterSource, s.msg.Source)
	}
	logs := logger.Find("Source generated number")
	require.Len(t, logs, ticks)
	assert.Equal(t, "3", logs[3].String("number"))
}

func TestPoller_KeepsTickingAfterSendFailure(t *testing.T) {
	mock := clock.NewMock()
	logger := &test.Logger{}
	sender := &recordingSender{err: errors.New("unavailable")}
	p := source.NewPoller(&source.Counter{}, sender, source.PollerConfig{
		Channel: "number-channel",
		Clock:   mock,
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := p.Start(ctx)
	require.NoError(t, err)

	mock.Add(100 * time.Millisecond)
	require.Eventually(t, func() bool { return len(logger.Find("Sending number failed")) == 1 },
		time.Second, time.Millisecond)

	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()

	mock.Add(100 * time.Millisecond)
	require.Eventually(t, func() bool { return sender.len() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []any{1}, sender.payloads())
}

func TestPoller_StartTwice(t *testing.T) {
	p := source.NewPoller(&source.Counter{}, &recordingSender{}, source.PollerConfig{
		Channel: "number-channel",
		Clock:   clock.NewMock(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := p.Start(ctx)
	require.NoError(t, err)
	_, err = p.Start(ctx)
	assert.ErrorIs(t, err, source.ErrAlreadyStarted)
}

func TestInjector_SubmitsNonPositiveNumbers(t *testing.T) {
	mock := clock.NewMock()
	logger := &test.Logger{}
	gw := &recordingGateway{}
	inj := source.NewInjector(gw, source.InjectorConfig{
		Clock:  mock,
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done, err := inj.Start(ctx)
	require.NoError(t, err)

	const ticks = 20
	for i := range ticks {
		mock.Add(time.Second)
		require.Eventually(t, func() bool { return len(gw.submitted()) == i+1 }, time.Second, time.Millisecond)
	}
	cancel()
	<-done

	for _, n := range gw.submitted() {
		assert.GreaterOrEqual(t, n, -99)
		assert.LessOrEqual(t, n, 0)
	}
	assert.Len(t, logger.Find("Gateway injecting"), ticks)
}

func TestInjector_UsesRand(t *testing.T) {
	mock := clock.NewMock()
	gw := &recordingGateway{}
	draws := []int{99, 0, 42}
	inj := source.NewInjector(gw, source.InjectorConfig{
		Clock:  mock,
		Logger: &test.Logger{},
		Rand: func(n int) int {
			v := draws[0]
			draws = draws[1:]
			return v
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := inj.Start(ctx)
	require.NoError(t, err)

	for i := range 3 {
		mock.Add(time.Second)
		require.Eventually(t, func() bool { return len(gw.submitted()) == i+1 }, time.Second, time.Millisecond)
	}
	assert.Equal(t, []int{-99, 0, -42}, gw.submitted())
}

func TestInjector_LogsSubmissionFailure(t *testing.T) {
	mock := clock.NewMock()
	logger := &test.Logger{}
	gw := &recordingGateway{err: source.ErrSubmission}
	inj := source.NewInjector(gw, source.InjectorConfig{Clock: mock, Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := inj.Start(ctx)
	require.NoError(t, err)

	for i := range 2 {
		mock.Add(time.Second)
		require.Eventually(t, func() bool { return len(logger.Find("Injection failed")) == i+1 },
			time.Second, time.Millisecond)
	}
	assert.Len(t, gw.submitted(), 2)
}
