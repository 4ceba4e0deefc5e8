package customhttp

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

type middleware func(next httpCommandFunc) httpCommandFunc

func chainMiddleware(m ...middleware) middleware {
	return func(final httpCommandFunc) httpCommandFunc {
		last := final
		for i := len(m) - 1; i >= 0; i-- {
			last = m[i](last)
		}

		return func(req *http.Request) (resp *http.Response, err error) {
			return last(req)
		}
	}
}

func requestLogging() middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (resp *http.Response, err error) {
			resp, err = next(req)
			entry := log.WithContext(req.Context()).WithFields(log.Fields{
				"method": req.Method,
				"url":    req.URL.String(),
			})
			if err != nil {
				entry.WithError(err).Error("request failed")
				return resp, err
			}
			entry.Debugf("request completed with status %s", resp.Status)
			return resp, err
		}
	}
}
