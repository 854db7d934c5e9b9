package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"walink/internal/domain"
	"walink/internal/service"
)

type API struct {
	Svc     *service.LinkService
	Limiter *rate.Limiter
}

func (a *API) Register(r *mux.Router) {
	limited := RateLimit(a.Limiter)
	r.Handle("/v1/links", limited(http.HandlerFunc(a.handleCreateLink))).Methods(http.MethodPost)
	r.Handle("/v1/links/order-confirmation", limited(http.HandlerFunc(a.handleOrderConfirmation))).Methods(http.MethodPost)
	r.Handle("/v1/links/subscription-confirmation", limited(http.HandlerFunc(a.handleSubscriptionConfirmation))).Methods(http.MethodPost)
	r.HandleFunc("/v1/links/{id}", a.handleGetLink).Methods(http.MethodGet)
}

func (a *API) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLinkRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, a.Svc.Link(r.Context(), req.Phone, req.Message))
}

func (a *API) handleOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderConfirmationRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	link, err := a.Svc.OrderConfirmationLink(r.Context(), req.UserID, req.Order)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, link)
	case errors.Is(err, service.ErrPhoneNotFound):
		http.Error(w, ErrPhoneNotFound, http.StatusNotFound)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		slog.Warn("order confirmation link: user store breaker open", "user_id", req.UserID)
		http.Error(w, ErrUnavailable, http.StatusServiceUnavailable)
	default:
		slog.Error("order confirmation link failed", "err", err, "user_id", req.UserID)
		http.Error(w, ErrDependency, http.StatusBadGateway)
	}
}

func (a *API) handleSubscriptionConfirmation(w http.ResponseWriter, r *http.Request) {
	var req domain.SubscriptionConfirmationRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, a.Svc.SubscriptionConfirmationLink(r.Context(), req.Phone, req.Subscription))
}

func (a *API) handleGetLink(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, ErrMissingID, http.StatusBadRequest)
		return
	}
	rec, found, err := a.Svc.GetLink(r.Context(), id)
	if err != nil {
		slog.Error("get link failed", "err", err, "link_id", id)
		http.Error(w, ErrDependency, http.StatusBadGateway)
		return
	}
	if !found {
		http.Error(w, ErrNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, ErrInvalidJSON, http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
