package middlewares

import (
	"net/http"

	"nanowatch/internal/util"
)

//RuntimeHealthCheck is a sample health check func
func RuntimeHealthCheck() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus("All OK", http.StatusOK, w)
	}
}
