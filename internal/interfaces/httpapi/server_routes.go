package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leaderboards/{year}", handler.GetScoreLeaderboard)
	mux.HandleFunc("GET /v1/leaderboards/{year}/splits", handler.GetSplitLeaderboard)
	mux.HandleFunc("GET /v1/leaderboards/{year}/languages", handler.GetLanguageLeaderboard)
	mux.HandleFunc("GET /v1/years", handler.ListYears)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, cookieName string) {
	registerAuthorizedYearRoutes(mux, handler, verifier, cookieName)
	registerAuthorizedMeRoutes(mux, handler, verifier, cookieName)
}

func registerAuthorizedYearRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, cookieName string) {
	mux.Handle("GET /v1/years/{year}", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.GetYear)))
	mux.Handle("PUT /v1/years", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.UpsertYear)))
	mux.Handle("DELETE /v1/years/{year}", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.DeleteYear)))
}

func registerAuthorizedMeRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, cookieName string) {
	mux.Handle("GET /v1/me/aoc-id", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.GetMyAoCID)))
	mux.Handle("PUT /v1/me/aoc-id", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.SetMyAoCID)))
	mux.Handle("GET /v1/me/participations", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.ListMyParticipations)))
	mux.Handle("PUT /v1/me/participations", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.JoinYear)))
	mux.Handle("DELETE /v1/me/participations/{year}", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.LeaveYear)))
	mux.Handle("GET /v1/me/settings", RequireAuth(verifier, cookieName, http.HandlerFunc(handler.GetMySettings)))
}
