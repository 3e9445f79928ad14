package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagsin-net/heuristic/stability"
)

var errNotANumber = errors.New("httpapi: query parameter is not a positive integer")

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleApplySnapshot(c *gin.Context) {
	var w graphSnapshotWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, updateResponseWire{Success: false, Message: err.Error()})

		return
	}

	result := s.facade.ApplySnapshot(snapshotFromWire(w))
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, updateResponseWire{Success: result.Success, Message: result.Message})
}

func (s *Server) handleRequestRoute(c *gin.Context) {
	var w routeRequestWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, routeResponseWire{Success: false, Message: err.Error()})

		return
	}

	algo := algoFromString(w.Algorithm)
	result, err := s.facade.RequestRoute(c.Request.Context(), w.SourceNodeID, w.DestinationNodeID, algo)
	if err != nil {
		c.JSON(http.StatusBadRequest, routeResponseWire{Success: false, Message: err.Error()})

		return
	}

	c.JSON(http.StatusOK, routeResponseFromResult(result))
}

func (s *Server) handleKShortest(c *gin.Context) {
	var w kShortestRequestWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	routes, err := s.facade.FindKShortestPaths(w.SourceNodeID, w.DestinationNodeID, w.K)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})

		return
	}

	out := make([]*routeResponseWire, len(routes))
	for i, r := range routes {
		out[i] = routeResponseFromRoute(r)
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

func (s *Server) handleBackupRoute(c *gin.Context) {
	var w backupRequestWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, routeResponseWire{Success: false, Message: err.Error()})

		return
	}

	route, err := s.facade.FindBackupRoutes(w.SourceNodeID, w.DestinationNodeID, w.PrimaryPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, routeResponseWire{Success: false, Message: err.Error()})

		return
	}
	if route == nil {
		c.JSON(http.StatusOK, routeResponseWire{Success: false, Message: "no backup route found"})

		return
	}

	c.JSON(http.StatusOK, routeResponseFromRoute(route))
}

func (s *Server) handleStats(c *gin.Context) {
	stats := s.facade.Store().Stats()
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleCritical(c *gin.Context) {
	k := 5
	if v := c.Query("k"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			k = n
		}
	}

	stats := s.facade.Store().Stats()
	top := stats.TopKCritical(k)
	out := make([]criticalNodeWire, len(top))
	for i, cn := range top {
		out[i] = criticalNodeWire{ID: cn.ID, Score: cn.Score}
	}
	c.JSON(http.StatusOK, gin.H{"critical_nodes": out})
}

func (s *Server) handleRecentRuns(c *gin.Context) {
	algo := algoFromString(c.Query("algo"))
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{"runs": s.facade.RecentRuns(algo, limit)})
}

func (s *Server) handleEntityStability(c *gin.Context) {
	kind := stability.EntityNode
	if c.Query("kind") == "link" {
		kind = stability.EntityLink
	}
	id := c.Param("id")

	c.JSON(http.StatusOK, s.facade.Analyzer().EntityStability(kind, id))
}

func (s *Server) handleNetworkStability(c *gin.Context) {
	c.JSON(http.StatusOK, s.facade.Analyzer().NetworkStability())
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotANumber
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, errNotANumber
	}

	return n, nil
}
