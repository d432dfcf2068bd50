package retrieve

import (
	"context"
	"sync"

	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

// scriptedClient drives the engine from tests: fn receives the 1-based call
// number and decides the response.
type scriptedClient struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, params wigle.SearchParams, cursor string) (*wigle.PageResult, error)
}

func (c *scriptedClient) SearchPage(_ context.Context, params wigle.SearchParams, cursor string) (*wigle.PageResult, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()
	return c.fn(n, params, cursor)
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func net(id, ssid string) wigle.Network {
	return wigle.Network{NetID: id, SSID: ssid, LastUpdated: "20240101120000", Type: "infra"}
}

func page(cursor string, total int, nets ...wigle.Network) *wigle.PageResult {
	return &wigle.PageResult{
		Success:      true,
		TotalResults: total,
		SearchAfter:  cursor,
		Results:      nets,
	}
}
