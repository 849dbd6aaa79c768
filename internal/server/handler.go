package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/koso-app/koso/internal/ledger"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc LedgerService
	log *logrus.Logger
}

func NewHandler(svc LedgerService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type depositRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

type goalRequest struct {
	Name      string `json:"name"`
	Target    int64  `json:"target"`
	Frequency string `json:"frequency"`
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.svc.Dashboard(accountID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// Transactions lists the account's transactions newest first. The optional
// limit query parameter defaults to the history window.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	txs, err := h.svc.Recent(accountID, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	WriteJSON(w, http.StatusOK, txs)
}

func (h *Handler) Goals(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	goals, err := h.svc.Goals(accountID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, goals)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req goalRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.svc.CreateGoal(accountID, req.Name, req.Target, req.Frequency)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req depositRequest
	if !decode(w, r, &req) {
		return
	}
	method, err := ledger.ParseMethod(req.Method)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Deposit(accountID, req.Amount, method)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req amountRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Withdraw(accountID, req.Amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Contribute(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	goalID, ok := h.pathID(w, r, "goalID")
	if !ok {
		return
	}
	var req amountRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Contribute(accountID, goalID, req.Amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := h.log.WithFields(logrus.Fields{"path": r.URL.Path, "status": status}).WithError(err)
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
		WriteError(w, status, "internal server error")
		return
	}
	entry.Debug("request rejected")
	WriteError(w, status, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
