package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sagsin-net/heuristic/facade"
)

// upgrader accepts any origin: this is a demo transport, not a
// production-hardened gateway.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades the connection and runs one RunAlgorithmStream
// invocation, fanning out each StreamEvent as a JSON frame. This gives
// the collaborator-owned sink of spec §4.3/§5 a concrete transport to
// exercise in this repo's demo server.
func (s *Server) handleStream(c *gin.Context) {
	var req algorithmRunRequestWire
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "op", "run_algorithm_stream", "error", err.Error())

		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sink := func(ev facade.StreamEvent) {
		if werr := conn.WriteJSON(streamEventToWire(ev)); werr != nil {
			s.log.Warn("websocket write failed", "op", "run_algorithm_stream", "error", werr.Error())
		}
	}

	if err := s.facade.RunAlgorithmStream(ctx, req.Src, req.Dst, algoFromString(req.Algo), sink); err != nil {
		_ = conn.WriteJSON(gin.H{"kind": "error", "message": err.Error()})
	}
}
