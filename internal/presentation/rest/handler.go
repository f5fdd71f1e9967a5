package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/karacoop/credit-service/internal/application/dto"
	"github.com/karacoop/credit-service/internal/application/usecase"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
	"github.com/karacoop/credit-service/pkg/observability"
)

// CreditHandler exposes the credit engine over HTTP.
type CreditHandler struct {
	simulate      *usecase.SimulateCreditUseCase
	createDemand  *usecase.CreateDemandUseCase
	decideDemand  *usecase.DecideDemandUseCase
	getDemand     *usecase.GetDemandUseCase
	createCtr     *usecase.CreateContractUseCase
	getContract   *usecase.GetContractUseCase
	applyPayment  *usecase.ApplyPaymentUseCase
	discharge     *usecase.ValidateDischargeUseCase
	closeContract *usecase.CloseContractUseCase
	extend        *usecase.ExtendContractUseCase
	markPenalty   *usecase.MarkPenaltyPaidUseCase
	eligibility   *usecase.CheckEligibilityUseCase

	validate *validator.Validate
	metrics  *observability.CreditMetrics
	logger   *slog.Logger
}

// NewCreditHandler wires the use cases behind the HTTP surface.
func NewCreditHandler(
	simulate *usecase.SimulateCreditUseCase,
	createDemand *usecase.CreateDemandUseCase,
	decideDemand *usecase.DecideDemandUseCase,
	getDemand *usecase.GetDemandUseCase,
	createCtr *usecase.CreateContractUseCase,
	getContract *usecase.GetContractUseCase,
	applyPayment *usecase.ApplyPaymentUseCase,
	discharge *usecase.ValidateDischargeUseCase,
	closeContract *usecase.CloseContractUseCase,
	extend *usecase.ExtendContractUseCase,
	markPenalty *usecase.MarkPenaltyPaidUseCase,
	eligibility *usecase.CheckEligibilityUseCase,
	metrics *observability.CreditMetrics,
	logger *slog.Logger,
) *CreditHandler {
	return &CreditHandler{
		simulate:      simulate,
		createDemand:  createDemand,
		decideDemand:  decideDemand,
		getDemand:     getDemand,
		createCtr:     createCtr,
		getContract:   getContract,
		applyPayment:  applyPayment,
		discharge:     discharge,
		closeContract: closeContract,
		extend:        extend,
		markPenalty:   markPenalty,
		eligibility:   eligibility,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		metrics:       metrics,
		logger:        logger,
	}
}

// RegisterRoutes attaches the credit API to the given mux.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/simulations", h.handleSimulate)

	mux.HandleFunc("POST /v1/demands", h.handleCreateDemand)
	mux.HandleFunc("GET /v1/demands/{id}", h.handleGetDemand)
	mux.HandleFunc("POST /v1/demands/{id}/decision", h.handleDecideDemand)

	mux.HandleFunc("POST /v1/contracts", h.handleCreateContract)
	mux.HandleFunc("GET /v1/contracts/{id}", h.handleGetContract)
	mux.HandleFunc("POST /v1/contracts/{id}/payments", h.handleApplyPayment)
	mux.HandleFunc("POST /v1/contracts/{id}/discharge", h.handleDischarge)
	mux.HandleFunc("POST /v1/contracts/{id}/close", h.handleClose)
	mux.HandleFunc("POST /v1/contracts/{id}/extend", h.handleExtend)

	mux.HandleFunc("POST /v1/penalties/{id}/pay", h.handleMarkPenaltyPaid)

	mux.HandleFunc("GET /v1/members/{id}/eligibility", h.handleEligibility)
}

func (h *CreditHandler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateCreditRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.simulate.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.SimulationsRun.Add(r.Context(), 1)
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleCreateDemand(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDemandRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.createDemand.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *CreditHandler) handleGetDemand(w http.ResponseWriter, r *http.Request) {
	res, err := h.getDemand.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleDecideDemand(w http.ResponseWriter, r *http.Request) {
	var req dto.DecideDemandRequest
	req.DemandID = r.PathValue("id")
	if !h.decodeWithID(w, r, &req, &req.DemandID) {
		return
	}
	res, err := h.decideDemand.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateContractRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.createCtr.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *CreditHandler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	res, err := h.getContract.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyPaymentRequest
	if !h.decodeWithID(w, r, &req, &req.ContractID) {
		return
	}
	res, err := h.applyPayment.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.PaymentsApplied.Add(r.Context(), 1)
	writeJSON(w, http.StatusCreated, res)
}

func (h *CreditHandler) handleDischarge(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateDischargeRequest
	if !h.decodeWithID(w, r, &req, &req.ContractID) {
		return
	}
	res, err := h.discharge.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseContractRequest
	if !h.decodeWithID(w, r, &req, &req.ContractID) {
		return
	}
	res, err := h.closeContract.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.ContractsClosed.Add(r.Context(), 1)
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleExtend(w http.ResponseWriter, r *http.Request) {
	var req dto.ExtendContractRequest
	if !h.decodeWithID(w, r, &req, &req.ContractID) {
		return
	}
	res, err := h.extend.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *CreditHandler) handleMarkPenaltyPaid(w http.ResponseWriter, r *http.Request) {
	req := dto.MarkPenaltyPaidRequest{PenaltyID: r.PathValue("id")}
	res, err := h.markPenalty.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CreditHandler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	guarantorID := r.URL.Query().Get("guarantor_id")
	res, err := h.eligibility.Execute(r.Context(), clientID, guarantorID, time.Now().UTC())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decode parses and validates a JSON body.
func (h *CreditHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// decodeWithID parses a JSON body, then overrides the request's id field
// with the path parameter so the URL is authoritative.
func (h *CreditHandler) decodeWithID(w http.ResponseWriter, r *http.Request, req any, id *string) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	*id = r.PathValue("id")
	if err := h.validate.Struct(req); err != nil {
		writeErrorBody(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *CreditHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case valueobject.IsValidation(err):
		writeErrorBody(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, valueobject.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, valueobject.ErrVersionConflict),
		errors.Is(err, valueobject.ErrInvalidStatusTransition):
		writeErrorBody(w, http.StatusConflict, err.Error())
	case valueobject.IsPrecondition(err):
		writeErrorBody(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorBody(w, http.StatusInternalServerError, "internal error")
	}
}

func writeErrorBody(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
