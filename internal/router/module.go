package router

import "github.com/gin-gonic/gin"

// Module registers its routes on the group the Registry hands it
// (the /api group or the root page group).
type Module interface {
	Register(rg *gin.RouterGroup)
}
