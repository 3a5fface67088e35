package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// keepAlive intervalo de comentarios SSE; una escritura fallida detecta al cliente desconectado.
var keepAlive = 15 * time.Second

// watcher feed que publica cada nueva lista (livesync.Feed).
type watcher[T any] interface {
	Watch() (<-chan []T, func())
}

// streamSnapshots envía cada snapshot del feed como evento SSE "snapshot" hasta que el cliente
// se desconecta o el feed se cierra.
func streamSnapshots[T any](c *fiber.Ctx, feed watcher[T], render func([]T) any) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ch, cancel := feed.Watch()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()
		for {
			select {
			case list, ok := <-ch:
				if !ok {
					fmt.Fprint(w, "event: closed\ndata: {}\n\n")
					_ = w.Flush()
					return
				}
				payload, err := json.Marshal(render(list))
				if err != nil {
					return
				}
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
