package websocket

import (
	"github.com/labstack/echo/v4"
)

// Handler serves the "/ws" endpoint.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(conn, s.handleInbound)
	s.hub.Register(client)

	client.Run()

	// A dropped socket ends its interview; the registry must not leak the
	// session.
	defer func() {
		if id := client.SessionID(); id != "" {
			s.registry.Remove(id)
		}
		s.hub.Unregister(client)
	}()

	// Wait for the client context to be done (connection closed)
	<-client.Context().Done()

	return nil
}
