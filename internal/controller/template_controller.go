// internal/controller/template_controller.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/brokerbridge-backend/internal/errors"
	"github.com/unclebandit/brokerbridge-backend/internal/service"
)

type TemplateController struct {
	TemplateService *service.TemplateService
}

func (c *TemplateController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	reports, err := c.TemplateService.ListReports()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"data": reports})
}

func (c *TemplateController) GetTemplateReport(w http.ResponseWriter, r *http.Request) {
	id, err := templateID(r)
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	report, err := c.TemplateService.Report(id)
	if err != nil {
		writeTemplateError(w, err)
		return
	}

	json.NewEncoder(w).Encode(report)
}

func (c *TemplateController) Optimize(w http.ResponseWriter, r *http.Request) {
	id, err := templateID(r)
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	suggestion, err := c.TemplateService.Optimize(context.Background(), id)
	if err != nil {
		writeTemplateError(w, err)
		return
	}

	json.NewEncoder(w).Encode(suggestion)
}

func (c *TemplateController) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := templateID(r)
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid suggestion index", http.StatusBadRequest)
		return
	}

	if err := c.TemplateService.ApplySuggestion(id, index); err != nil {
		writeTemplateError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"template_id": id,
		"applied":     index,
	})
}

func (c *TemplateController) DismissSuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := templateID(r)
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	if err := c.TemplateService.DismissSuggestions(id); err != nil {
		writeTemplateError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"template_id": id,
		"dismissed":   true,
	})
}

func templateID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func writeTemplateError(w http.ResponseWriter, err error) {
	var outOfRange *appErrors.ErrSuggestionOutOfRange
	switch {
	case appErrors.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &outOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
