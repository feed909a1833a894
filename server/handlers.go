package server

import (
	"errors"
	"net/http"

	"github.com/TuftsBCB/microenv/smr"
	"github.com/gin-gonic/gin"
)

const kindBadRequest = "bad_request"

type batchRequest struct {
	Requests []smr.Request `json:"requests"`
}

type batchResponse struct {
	Results []smr.BatchItem `json:"results"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req smr.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := checkRequest(req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.smr.Evaluate(req)
	if err != nil {
		c.JSON(statusOf(err), gin.H{
			"status": "error",
			"error":  err.Error(),
			"kind":   smr.ErrorKind(err),
		})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Requests) == 0 {
		badRequest(c, errors.New("no requests given"))
		return
	}
	for _, r := range req.Requests {
		if err := checkRequest(r); err != nil {
			badRequest(c, err)
			return
		}
	}
	items := s.smr.Batch(c.Request.Context(), req.Requests)
	c.JSON(http.StatusOK, batchResponse{Results: items})
}

func checkRequest(req smr.Request) error {
	switch {
	case req.DesignPath == "":
		return errors.New("design_pdb is required")
	case req.NaturalPath == "":
		return errors.New("natural_pdb is required")
	case req.Radius != nil:
		return smr.CheckRadius(*req.Radius)
	}
	return nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": "error",
		"error":  err.Error(),
		"kind":   kindBadRequest,
	})
}

// statusOf maps an evaluation error to an HTTP status code.
func statusOf(err error) int {
	switch smr.ErrorKind(err) {
	case smr.KindUnmappableResidue, smr.KindMissingReferenceAtom:
		return http.StatusUnprocessableEntity
	case smr.KindStructureLoad:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
