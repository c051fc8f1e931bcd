package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "yearbook/internal/delivery/context"
	"yearbook/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const sseKeepAliveInterval = 25 * time.Second

// streamTopic relays change events of one topic as server-sent events until
// the client disconnects. The subscription is released on return.
func streamTopic(c echo.Context, feed service.ChangeFeed, topic string, logger *slog.Logger) error {
	ctx := c.Request().Context()
	logger = deliverycontext.GetLoggerOrDefault(ctx, logger)

	events, unsubscribe, err := feed.Subscribe(ctx, topic)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to change feed")
	}
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(res, ": connected\n\n"); err != nil {
		return nil
	}
	res.Flush()

	logger.Debug("Change stream opened", slog.String("topic", topic))
	defer logger.Debug("Change stream closed", slog.String("topic", topic))

	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(event)
			if err != nil {
				return errors.WithStack(err)
			}
			if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
				return nil
			}
			res.Flush()

		case <-keepAlive.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
