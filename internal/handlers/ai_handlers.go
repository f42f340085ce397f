package handlers

import (
	"net/http"

	"github.com/Werneck0live/shukatsu-tracker/internal/ai"
	"github.com/Werneck0live/shukatsu-tracker/internal/apierror"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
)

// CompanyInfo responde 200 sempre que o corpo é válido; falhas da IA vão em "error".
func (h *CompanyHandler) CompanyInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, apierror.MethodNotAllowed)
		return
	}
	var req models.CompanyInfoRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	utils.Sanitize(&req)
	if apiErr := validateStruct(req); apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	if h.AI == nil {
		utils.WriteJSON(w, http.StatusOK, models.CompanyInfo{Error: models.Ptr(ai.MsgUnavailable)})
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.AI.CompanyInfo(r.Context(), req.CompanyName))
}
