package i

import "github.com/gin-gonic/gin"

// Controller registers a group of endpoints on the versioned API group.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
}
