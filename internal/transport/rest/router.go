package rest

import "net/http"

// NewRouter wires all REST handlers into a ServeMux using method
// patterns. Authentication is enforced by the services themselves, which
// reject requests without a user in the context.
func NewRouter(authH *AuthHandler, topicH *TopicHandler, studyH *StudyHandler, healthH *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("POST /api/auth/guest", authH.Guest)
	mux.HandleFunc("POST /api/auth/refresh", authH.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authH.Logout)

	mux.HandleFunc("GET /api/topics", topicH.List)
	mux.HandleFunc("POST /api/topics", topicH.Create)
	mux.HandleFunc("GET /api/topics/tree", topicH.Tree)
	mux.HandleFunc("GET /api/topics/{id}", topicH.Get)
	mux.HandleFunc("PUT /api/topics/{id}/name", topicH.Rename)
	mux.HandleFunc("PUT /api/topics/{id}/notes", topicH.UpdateNotes)
	mux.HandleFunc("PUT /api/topics/{id}/parent", topicH.Move)
	mux.HandleFunc("PUT /api/topics/{id}/checkpoints/{offsetDays}/toggle", topicH.ToggleCheckpoint)
	mux.HandleFunc("DELETE /api/topics/{id}", topicH.Delete)

	mux.HandleFunc("GET /api/dashboard", studyH.Dashboard)
	mux.HandleFunc("GET /api/collections/{filter}", studyH.Collection)

	mux.HandleFunc("GET /health", healthH.Health)
	mux.HandleFunc("GET /health/live", healthH.Live)
	mux.HandleFunc("GET /health/ready", healthH.Ready)

	return mux
}
