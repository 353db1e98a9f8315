package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SentiSamoyed/ContribTracker/src/tracker"
)

// RepoClassifyHandler serves GET /repo/{owner}/{repo} with the classification as JSON.
func (a *App) RepoClassifyHandler(writer http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		writer.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.Trim(request.URL.Path, "/")
	ss := strings.Split(path, "/")
	if len(ss) != 3 || ss[0] != "repo" {
		repoLog(path).Info("bad request")
		writer.WriteHeader(http.StatusBadRequest)
		return
	}

	repoId := ss[1] + "/" + ss[2]
	classification, err := a.Classify(request.Context(), repoId)
	if err != nil {
		repoLog(repoId).WithError(err).Warn("classification failed")
		http.Error(writer, err.Error(), statusFor(err))
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(classification); err != nil {
		repoLog(repoId).WithError(err).Error("writing response")
	}
}

func statusFor(err error) int {
	switch {
	case tracker.IsBadParameterError(err):
		return http.StatusBadRequest
	case tracker.IsAuthenticationError(err):
		return http.StatusUnauthorized
	case tracker.IsNotFoundError(err):
		return http.StatusNotFound
	case tracker.IsRateLimitError(err):
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}
