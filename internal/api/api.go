package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/IlyasAtabaev731/transfer-api/internal/config"
	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/IlyasAtabaev731/transfer-api/internal/lib/logger/sl"
	"github.com/IlyasAtabaev731/transfer-api/internal/services/transfer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	msgIncompleteData = "Dados incompletos"
	msgInvalidTypes   = "Tipos de dados inválidos"
)

type Service interface {
	Transfer(ctx context.Context, senderID, receiverID int64, amount float64) (models.TransferResult, error)
	Balance(ctx context.Context, id int64) (float64, error)
	User(ctx context.Context, id int64) (models.User, error)
	Users(ctx context.Context) []models.User
}

type APIServer struct {
	config  *config.Config
	logger  *slog.Logger
	server  *http.Server
	service Service
}

func New(config *config.Config, logger *slog.Logger, service Service) *APIServer {
	s := &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
		service: service,
	}

	s.configureRouter()

	return s
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("addr", s.server.Addr))

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.Use(requestID, metrics)

	router.HandleFunc("/transfer", s.transferHandler()).Methods(http.MethodPost)
	router.HandleFunc("/users", s.usersHandler()).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", s.userHandler()).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/balance", s.balanceHandler()).Methods(http.MethodGet)
	router.HandleFunc("/health", s.healthHandler()).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.server.Handler = router
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type BalanceResponse struct {
	ID      int64   `json:"id"`
	Balance float64 `json:"balance"`
}

func (s *APIServer) transferHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		log := s.requestLogger(r)

		req, msg, ok := decodeTransferRequest(r)
		if !ok {
			transfersTotal.WithLabelValues("bad_request").Inc()
			log.Debug("Rejected transfer request", slog.String("reason", msg))
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
			return
		}

		if req.invalidID {
			// Fractional or out-of-range ids name no user.
			s.writeTransferError(w, log, transfer.ErrUserNotFound)
			return
		}

		res, err := s.service.Transfer(r.Context(), req.SenderID, req.ReceiverID, req.Amount)
		if err != nil {
			s.writeTransferError(w, log, err)
			return
		}

		transfersTotal.WithLabelValues("success").Inc()
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *APIServer) writeTransferError(w http.ResponseWriter, log *slog.Logger, err error) {
	kind := transfer.KindOf(err)
	transfersTotal.WithLabelValues(kind.String()).Inc()

	if kind == transfer.KindUnknown {
		log.Error("Transfer failed", sl.Err(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func (s *APIServer) balanceHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidTypes})
			return
		}

		balance, err := s.service.Balance(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, BalanceResponse{ID: id, Balance: balance})
	}
}

func (s *APIServer) userHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidTypes})
			return
		}

		user, err := s.service.User(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func (s *APIServer) usersHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.service.Users(r.Context()))
	}
}

func (s *APIServer) healthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type transferRequest struct {
	models.TransferRequest

	invalidID bool
}

// decodeTransferRequest checks that every field is present before checking
// any field's type. On failure it returns the message for the 400 response.
func decodeTransferRequest(r *http.Request) (transferRequest, string, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return transferRequest{}, msgIncompleteData, false
	}

	fields := [...]string{"senderId", "receiverId", "amount"}

	for _, f := range fields {
		if _, ok := body[f]; !ok {
			return transferRequest{}, msgIncompleteData, false
		}
	}

	var nums [len(fields)]float64
	for i, f := range fields {
		n, ok := body[f].(float64)
		if !ok {
			return transferRequest{}, msgInvalidTypes, false
		}
		nums[i] = n
	}

	var req transferRequest
	var senderOK, receiverOK bool
	req.SenderID, senderOK = toUserID(nums[0])
	req.ReceiverID, receiverOK = toUserID(nums[1])
	req.Amount = nums[2]
	req.invalidID = !senderOK || !receiverOK

	return req, "", true
}

func toUserID(n float64) (int64, bool) {
	if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
