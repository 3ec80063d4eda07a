package testnats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "nats:2.10-alpine"
	clientPort = "4222/tcp"
)

var (
	broker     *Broker
	brokerErr  error
	brokerOnce sync.Once
)

// Broker is a NATS server in a container, started once per test binary.
// Tests sharing it must not run in parallel on the same subject.
type Broker struct {
	container testcontainers.Container
	URL       string
}

// StartBroker returns the package's broker, starting it on first use.
// Call Stop once from the top-level test that started it.
func StartBroker(t *testing.T) *Broker {
	t.Helper()

	brokerOnce.Do(func() {
		broker, brokerErr = startBroker(context.Background())
	})
	require.NoError(t, brokerErr, "start nats broker")
	return broker
}

func startBroker(ctx context.Context) (*Broker, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{clientPort},
			WaitingFor:   wait.ForListeningPort(clientPort),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("run container: %w", err)
	}

	url, err := c.PortEndpoint(ctx, clientPort, "nats")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("resolve endpoint: %w", err)
	}
	return &Broker{container: c, URL: url}, nil
}

func (b *Broker) Stop(t *testing.T) {
	t.Helper()
	if err := b.container.Terminate(context.Background()); err != nil {
		t.Logf("failed to stop nats broker: %s", err)
	}
}

// Listen subscribes to subject on a fresh connection and flushes so that
// messages published after it returns are captured.
func (b *Broker) Listen(t *testing.T, subject string) *Listener {
	t.Helper()

	conn, err := nats.Connect(b.URL)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	sub, err := conn.SubscribeSync(subject)
	require.NoError(t, err)
	require.NoError(t, conn.Flush())
	return &Listener{sub: sub}
}

type Listener struct {
	sub *nats.Subscription
}

// Next waits for one message and decodes its JSON body into v.
func (l *Listener) Next(t *testing.T, v interface{}) *nats.Msg {
	t.Helper()

	msg, err := l.sub.NextMsg(2 * time.Second)
	require.NoError(t, err, "no message on %s", l.sub.Subject)
	require.NoError(t, json.Unmarshal(msg.Data, v))
	return msg
}
