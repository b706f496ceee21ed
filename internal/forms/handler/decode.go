package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	dErrors "aquads/pkg/domain-errors"
	"aquads/pkg/platform/httputil"
	"aquads/pkg/requestcontext"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// decode fills dst from a JSON or urlencoded body and trims its strings.
// An empty body leaves dst zero so the service reports the missing fields.
// On failure it writes a 400 and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	err := decodeBody(r, dst)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid request body",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		message := "invalid request body"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			message = "request body too large"
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, message))
		return false
	}

	sanitize(dst)
	return true
}

func decodeBody(r *http.Request, dst any) error {
	mediaType := contentTypeJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return err
		}
		mediaType = parsed
	}

	switch mediaType {
	case contentTypeForm:
		if err := r.ParseForm(); err != nil {
			return err
		}
		return decodeForm(r.PostForm, dst)
	case contentTypeJSON:
		err := json.NewDecoder(r.Body).Decode(dst)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	default:
		return errors.New("unsupported content type " + mediaType)
	}
}

// decodeForm maps the first value of each form field onto dst's json names,
// so numeric fields go through the same string handling as JSON strings.
func decodeForm(values map[string][]string, dst any) error {
	flat := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			flat[key] = vals[0]
		}
	}
	raw, err := json.Marshal(flat)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
