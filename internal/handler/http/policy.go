package http

import (
	"encoding/json"
	"net/http"

	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// Get implements PolicyHandler.
func (p *PolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := p.policyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PolicyHandler.
func (p *PolicyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq policy.UpdatePolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := p.policyService.Update(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Policy updated", result)
}
