package problems

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diwise/record-translator/internal/pkg/application/translator"
	keyerrors "github.com/diwise/record-translator/pkg/keyset/errors"
)

//ProblemDetails stores details about a certain problem according to RFC7807
//See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

//ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ     string
	title   string
	detail  string
	code    int
	traceID string
}

const (
	//ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	problemTypePrefix string = "https://github.com/diwise/record-translator/problems/"
)

func newProblem(name, title, detail string, code int, traceID string) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:     problemTypePrefix + name,
		title:   title,
		detail:  detail,
		code:    code,
		traceID: traceID,
	}
}

//NewBadRequestData reports that the request includes input data which does not meet the requirements of the operation
func NewBadRequestData(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("BadRequestData", "Bad Request Data", detail, http.StatusBadRequest, traceID)
}

//NewFieldMissing reports that a keyed container lacks a key required by its record type
func NewFieldMissing(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("FieldMissing", "Field Missing", detail, http.StatusBadRequest, traceID)
}

//NewTypeMismatch reports that a value in a keyed container has the wrong type
func NewTypeMismatch(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("TypeMismatch", "Type Mismatch", detail, http.StatusBadRequest, traceID)
}

//NewKeySetNotFound reports that a record type has no key set for the requested profile
func NewKeySetNotFound(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("KeySetNotFound", "Key Set Not Found", detail, http.StatusNotFound, traceID)
}

func NewNotFound(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("ResourceNotFound", "Not Found", detail, http.StatusNotFound, traceID)
}

func NewUnauthorizedRequest(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("UnauthorizedRequest", "Unauthorized Request", detail, http.StatusUnauthorized, traceID)
}

func NewInternalError(detail, traceID string) *ProblemDetailsImpl {
	return newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError, traceID)
}

//ReportNewBadRequestData creates a BadRequestData problem and sends it to the supplied http.ResponseWriter
func ReportNewBadRequestData(w http.ResponseWriter, detail, traceID string) {
	NewBadRequestData(detail, traceID).WriteResponse(w)
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail, traceID string) {
	NewUnauthorizedRequest(detail, traceID).WriteResponse(w)
}

// ReportError picks the problem type that matches err and sends it to the supplied http.ResponseWriter
func ReportError(w http.ResponseWriter, err error, traceID string) {
	var p *ProblemDetailsImpl
	detail := err.Error()

	switch {
	case errors.Is(err, keyerrors.ErrFieldMissing):
		p = NewFieldMissing(detail, traceID)
	case errors.Is(err, keyerrors.ErrTypeMismatch):
		p = NewTypeMismatch(detail, traceID)
	case errors.Is(err, keyerrors.ErrTypeUnsupported),
		errors.Is(err, keyerrors.ErrUnknownProfile),
		errors.Is(err, keyerrors.ErrInvalidRecord):
		p = NewBadRequestData(detail, traceID)
	case errors.Is(err, keyerrors.ErrKeySetNotFound):
		p = NewKeySetNotFound(detail, traceID)
	case errors.Is(err, keyerrors.ErrUnknownRecordType),
		errors.Is(err, translator.ErrNoSourceConfigured):
		p = NewNotFound(detail, traceID)
	default:
		p = NewInternalError(detail, traceID)
	}

	p.WriteResponse(w)
}

//ContentType returns the ContentType to be used when returning this problem
func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Type() string {
	return p.typ
}

func (p *ProblemDetailsImpl) Title() string {
	return p.title
}

func (p *ProblemDetailsImpl) Detail() string {
	return p.detail
}

//MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	var traceID *string

	if p.traceID != "" {
		traceID = &p.traceID
	}

	j, err := json.Marshal(struct {
		Type    string  `json:"type"`
		Title   string  `json:"title"`
		Detail  string  `json:"detail"`
		TraceID *string `json:"traceID,omitempty"`
	}{
		Type:    p.typ,
		Title:   p.title,
		Detail:  p.detail,
		TraceID: traceID,
	})
	if err != nil {
		return nil, err
	}

	return j, nil
}

//ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {

	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

//WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
