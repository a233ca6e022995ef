package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/i18n"
	"github.com/bounswe/bounswe2025group9-sub004/internal/middleware"
)

// Every response on the optimize path goes through these envelopes, so the
// DTOs are pooled. Gin serializes synchronously inside c.JSON, which makes
// returning them right after the call safe.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} { return &dto.SuccessResponse{} },
	}
	errorResponsePool = sync.Pool{
		New: func() interface{} { return &dto.ErrorResponse{} },
	}
)

func borrowSuccess() *dto.SuccessResponse {
	resp, _ := successResponsePool.Get().(*dto.SuccessResponse)
	if resp == nil {
		resp = &dto.SuccessResponse{}
	}
	return resp
}

func releaseSuccess(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func borrowError() *dto.ErrorResponse {
	resp, _ := errorResponsePool.Get().(*dto.ErrorResponse)
	if resp == nil {
		resp = &dto.ErrorResponse{}
	}
	return resp
}

func releaseError(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// RequestBuilder decodes request bodies for a single gin context.
type RequestBuilder struct {
	c *gin.Context
}

// NewRequestBuilder wraps the context for request decoding.
func NewRequestBuilder(c *gin.Context) *RequestBuilder {
	return &RequestBuilder{c: c}
}

// Bind decodes the JSON body into v.
func (b *RequestBuilder) Bind(v interface{}) error {
	return b.c.ShouldBindJSON(v)
}

// UnmarshalFromReader decodes a JSON stream into a fresh T.
func UnmarshalFromReader[T any](reader io.Reader) (*T, error) {
	var v T
	if err := json.NewDecoder(reader).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UnmarshalFromBytes decodes JSON bytes into a fresh T.
func UnmarshalFromBytes[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ResponseBuilder writes enveloped responses for a single gin context,
// stamping each with the request ID and a timestamp.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder wraps the context for response writing.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data inside the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := borrowSuccess()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	releaseSuccess(resp)
}

// SuccessOK writes a 200 envelope.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201 envelope.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// SuccessAccepted writes a 202 envelope.
func (b *ResponseBuilder) SuccessAccepted(data interface{}) {
	b.Success(http.StatusAccepted, data)
}

// Error writes an error envelope, translating messageKey for the caller's
// locale. err, when non-nil, is attached to the context for the error
// handler middleware to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.fail(statusCode, message, err)
}

// ErrorWithMessage writes an error envelope with a literal message,
// bypassing translation.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.fail(statusCode, message, err)
}

func (b *ResponseBuilder) fail(statusCode int, message string, err error) {
	resp := borrowError()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	releaseError(resp)
}

// MarshalJSON encodes v to JSON bytes.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalToWriter encodes v as JSON onto w.
func MarshalToWriter(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// BuildRequest decodes the request body into a fresh T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate decodes the body and, when T validates itself,
// runs that validation before returning.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
