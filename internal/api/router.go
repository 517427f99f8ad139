// Package api exposes the protocol engine over HTTP: the single
// inter-VASP command endpoint spec.md §4.5 targets, a health check, and
// the swagger UI describing both.
package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/travelrule/engine/docs"
	"github.com/travelrule/engine/internal/engine"
	"github.com/travelrule/engine/internal/envelope"
)

// Server wires the protocol engine to gin.
type Server struct {
	engine *engine.Engine
	signer envelope.Signer
}

// NewServer builds a Server. signer signs the plain CommandResponse JSON
// engine.ProcessInbound returns into the envelope written to the wire —
// the layering split recorded on ProcessInbound's doc comment.
func NewServer(e *engine.Engine, signer envelope.Signer) *Server {
	return &Server{engine: e, signer: signer}
}

// Router builds the gin.Engine serving this Server.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(correlationIDMiddleware())
	r.Use(requestLoggingMiddleware())
	r.Use(configureCORS())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", s.handleHealthz)
	r.POST("/v1/command", s.handleCommand)

	return r
}

// handleHealthz reports liveness.
//
//	@Summary	Health check
//	@Success	200	{object}	map[string]string
//	@Router		/healthz [get]
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCommand receives a signed CommandRequest envelope from a peer
// VASP, runs it through the engine, and replies with a signed
// CommandResponse envelope (spec.md §4.5, §4.6).
//
//	@Summary	Submit a signed payment command
//	@Accept		application/octet-stream
//	@Produce	application/octet-stream
//	@Param		X-Verification-Key-Address	header	string	true	"sender account address"
//	@Success	200
//	@Failure	400
//	@Router		/v1/command [post]
func (s *Server) handleCommand(c *gin.Context) {
	signerAddress := c.GetHeader("X-Verification-Key-Address")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status, respBody, err := s.engine.ProcessInbound(c.Request.Context(), signerAddress, body)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	env, err := s.signer.Sign(respBody)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(status, "application/octet-stream", env)
}
