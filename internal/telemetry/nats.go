package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DefaultSubject is where the controller publishes readings.
const DefaultSubject = "plantcare.donnees"

// Subscriber feeds snapshots received on a NATS subject into a Feed.
type Subscriber struct {
	url     string
	subject string
	feed    *Feed
	logger  *zap.Logger
}

// NewSubscriber creates a Subscriber. Run connects and blocks.
func NewSubscriber(url, subject string, feed *Feed, logger *zap.Logger) *Subscriber {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{url: url, subject: subject, feed: feed, logger: logger}
}

// Run connects to NATS, subscribes and blocks until ctx is done.
// Reconnection is left to the NATS client.
func (s *Subscriber) Run(ctx context.Context) error {
	if s.url == "" {
		return errors.New("telemetry: NATS URL is empty")
	}

	nc, err := nats.Connect(s.url,
		nats.Name("plantcare"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				s.logger.Warn("telemetry disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			s.logger.Info("telemetry reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return fmt.Errorf("telemetry: connect %s: %w", s.url, err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(s.subject, s.HandleMsg)
	if err != nil {
		return fmt.Errorf("telemetry: subscribe %s: %w", s.subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	s.logger.Info("telemetry subscribed",
		zap.String("url", nc.ConnectedUrl()),
		zap.String("subject", s.subject),
	)

	<-ctx.Done()
	return nil
}

// HandleMsg decodes one pushed payload and publishes it.
func (s *Subscriber) HandleMsg(msg *nats.Msg) {
	snap, err := Decode(msg.Data)
	if err != nil {
		s.logger.Warn("dropping telemetry payload",
			zap.String("subject", msg.Subject),
			zap.Int("bytes", len(msg.Data)),
			zap.Error(err),
		)
		return
	}
	s.feed.Publish(snap)
	s.logger.Debug("telemetry snapshot",
		zap.Float64("temperature", snap.TemperatureC),
		zap.Float64("air_humidity", snap.AirHumidityPct),
		zap.Float64("soil_humidity", snap.SoilHumidityPct),
		zap.Float64("water_need", snap.WaterNeedLiters),
	)
}
