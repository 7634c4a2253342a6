package handlers

import (
	"log"
	"net/http"
	"strconv"

	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// respondError converts a service error into the shared error envelope.
// Transient and internal causes are logged; the response body only carries
// the public message.
func respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, common.NewErrorResponse(common.PublicMessage(err), nil, status))
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest,
			common.NewErrorResponse("invalid "+name, nil, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}
