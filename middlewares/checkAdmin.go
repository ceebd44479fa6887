package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminRequiredMessage = "You need administrator privileges to access this page."

func CheckAdmin(c *gin.Context) {
	if !c.GetBool("admin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": AdminRequiredMessage})
		return
	}

	c.Next()
}
