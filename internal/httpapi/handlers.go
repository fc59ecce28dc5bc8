package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

// User-facing messages.
const (
	NoticeAccepted       = "Registration received."
	MessageSubmitFailed  = "Registration could not be submitted. Please try again."
	maxRegisterBodyBytes = 64 << 10
)

type registerResponse struct {
	Accepted bool              `json:"accepted"`
	ID       string            `json:"id,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.writeForm(w, r, http.StatusOK, render.RenderOptions{})
}

// handleSubmitForm re-renders the page: 422 with values and messages on
// rejection, 200 with an empty form and a notice on acceptance.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	f, err := s.newForm()
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	raw := make(map[string]string)
	for _, field := range f.Fields() {
		if values, ok := r.PostForm[field]; ok && len(values) > 0 {
			raw[field] = values[0]
		}
	}

	outcome, err := f.Submit(r.Context(), raw)
	switch {
	case err != nil:
		status, mapping := s.submitFailure(r.Context(), err)
		opts := f.RenderOptions()
		if len(mapping.Fields) > 0 {
			opts.Errors = mapping.Fields
		}
		opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
		s.writeForm(w, r, status, opts)
	case !outcome.Accepted():
		s.writeForm(w, r, http.StatusUnprocessableEntity, f.RenderOptions())
	default:
		s.writeForm(w, r, http.StatusOK, render.RenderOptions{Notice: NoticeAccepted})
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodyBytes)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	raw, err := stringValues(payload)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	f, err := s.newForm()
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	outcome, err := f.Submit(r.Context(), raw)
	switch {
	case err != nil:
		status, mapping := s.submitFailure(r.Context(), err)
		if status == http.StatusUnprocessableEntity {
			s.writeJSON(w, status, registerResponse{Errors: mapping.Fields})
			return
		}
		s.writeJSON(w, status, errorResponse{Error: MessageSubmitFailed})
	case !outcome.Accepted():
		s.writeJSON(w, http.StatusUnprocessableEntity, registerResponse{Errors: outcome.Errors})
	default:
		s.writeJSON(w, http.StatusOK, registerResponse{Accepted: true, ID: outcome.ID})
	}
}

// submitFailure classifies a hand-off error. Field errors reported by the
// submitter (a duplicate CPF, say) are shown on their fields with 422; any
// other error is a 502 with a form-level message.
func (s *Server) submitFailure(ctx context.Context, err error) (int, render.ErrorMapping) {
	fm, formErr := s.orch.Load().Form(ctx)
	if formErr == nil {
		if mapping := render.MapErrors(fm, err); len(mapping.Fields) > 0 {
			s.logger.Info("registration refused by submitter", zap.Strings("fields", fieldNames(mapping.Fields)))
			return http.StatusUnprocessableEntity, mapping
		}
	}
	s.logger.Error("registration hand-off failed", zap.Error(err))
	return http.StatusBadGateway, render.ErrorMapping{Form: []string{MessageSubmitFailed}}
}

func fieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.contract)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	orch := s.orch.Load()
	renderer, err := orch.Renderer("")
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	out, err := orch.Render(r.Context(), orchestrator.Request{
		Renderer:      renderer.Name(),
		RenderOptions: opts,
	})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("write json response", zap.Error(err))
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

var errNonStringValue = errors.New("field values must be strings")

// stringValues keeps string entries. null is treated as absent; any other
// type is rejected.
func stringValues(payload map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			out[key] = v
		case nil:
		default:
			return nil, fmt.Errorf("%w: %q", errNonStringValue, key)
		}
	}
	return out, nil
}

