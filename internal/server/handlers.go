package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

var contentTypes = map[string]string{
	errors.FormatSVG:  "image/svg+xml",
	errors.FormatPNG:  "image/png",
	errors.FormatPDF:  "application/pdf",
	errors.FormatJSON: "application/json",
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// handleRender renders the layout document in the request body in one
// format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.Defaults
	opts.Logger = s.logger
	q := query{r: r}
	format := q.str("format", errors.FormatSVG)
	opts.Formats = []string{format}
	opts.Width = q.float("width", opts.Width)
	opts.Height = q.float("height", opts.Height)
	opts.Scale = q.float("scale", opts.Scale)
	opts.OffsetX = q.float("x", opts.OffsetX)
	opts.OffsetY = q.float("y", opts.OffsetY)
	opts.PNGScale = q.float("png_scale", opts.PNGScale)
	opts.Styled = q.bool("styled", opts.Styled)
	opts.Refresh = q.bool("refresh", false)
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Error:     "layout document exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Code:      string(errors.ErrCodeInvalidInput),
				RequestID: RequestID(r.Context()),
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	res, err := s.runner.Render(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Layout-Hash", res.LayoutHash)
	h.Set("X-Cache", cacheStatus(res.CacheHit))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// handleIcon renders a standalone person marker.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	opts := pipeline.IconOptions{
		Size:     q.float("size", pipeline.DefaultIconSize),
		Gender:   family.ParseGender(q.str("gender", "")),
		Child:    q.bool("child", false),
		Deceased: q.bool("deceased", false),
		Format:   q.str("format", errors.FormatSVG),
		Styled:   q.bool("styled", s.cfg.Defaults.Styled),
		PNGScale: q.float("png_scale", s.cfg.Defaults.PNGScale),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}

	data, hit, err := s.runner.Icon(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

// writeError answers with the status matching err's code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: msg, Code: string(code), RequestID: RequestID(r.Context())})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidLayout, errors.ErrCodeUnknownShape, errors.ErrCodeMissingPlacement:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// query parses typed query parameters, keeping the first failure.
type query struct {
	r   *http.Request
	err error
}

func (q *query) str(name, def string) string {
	if v := q.r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func (q *query) float(name string, def float64) float64 {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "query %s: %q is not a number", name, v)
	}
	return f
}

func (q *query) bool(name string, def bool) bool {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil && q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "query %s: %q is not a boolean", name, v)
	}
	return b
}
