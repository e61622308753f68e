package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func bindingErrors(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
}

func (h HandlerSet) serverError(c *gin.Context, err error) {
	h.log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	message(c, http.StatusInternalServerError, "Server error")
}

// parseID turns the :id path parameter into an ObjectID. A malformed id can
// never reference a stored record, so it is reported with the caller's
// not-found message.
func parseID(c *gin.Context, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		message(c, http.StatusNotFound, notFoundMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}
