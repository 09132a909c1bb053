package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotepage/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestNewErrorResponse tests creating a basic error response.
func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
		want    *ErrorResponse
	}{
		{
			name:    "basic error response",
			code:    ErrorCodeNotFound,
			message: "resource not found",
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeNotFound,
					Message: "resource not found",
				},
			},
		},
		{
			name:    "validation error response",
			code:    ErrorCodeValidation,
			message: "invalid input",
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeValidation,
					Message: "invalid input",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewErrorResponse(tt.code, tt.message)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNewErrorResponseWithDetails tests creating an error response with details.
func TestNewErrorResponseWithDetails(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
		details map[string]string
		want    *ErrorResponse
	}{
		{
			name:    "error with details",
			code:    ErrorCodeValidation,
			message: "validation failed",
			details: map[string]string{
				"limit":  "must be less than or equal to 100",
				"cursor": "invalid cursor",
			},
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeValidation,
					Message: "validation failed",
					Details: map[string]string{
						"limit":  "must be less than or equal to 100",
						"cursor": "invalid cursor",
					},
				},
			},
		},
		{
			name:    "error with empty details",
			code:    ErrorCodeBadRequest,
			message: "bad request",
			details: map[string]string{},
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeBadRequest,
					Message: "bad request",
					Details: map[string]string{},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewErrorResponseWithDetails(tt.code, tt.message, tt.details)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestWithTraceID tests adding trace ID to error response.
func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		response *ErrorResponse
		traceID  string
		want     string
	}{
		{
			name:     "add trace ID",
			response: NewErrorResponse(ErrorCodeInternal, "internal error"),
			traceID:  "trace-123",
			want:     "trace-123",
		},
		{
			name:     "empty trace ID",
			response: NewErrorResponse(ErrorCodeNotFound, "not found"),
			traceID:  "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.response.WithTraceID(tt.traceID)
			assert.Equal(t, tt.want, got.TraceID)
			assert.Same(t, tt.response, got) // Should return same instance
		})
	}
}

// TestHTTPStatusFromCode tests mapping error codes to HTTP status codes.
func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{
			name: "not found",
			code: ErrorCodeNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "validation error",
			code: ErrorCodeValidation,
			want: http.StatusBadRequest,
		},
		{
			name: "bad request",
			code: ErrorCodeBadRequest,
			want: http.StatusBadRequest,
		},
		{
			name: "unavailable",
			code: ErrorCodeUnavailable,
			want: http.StatusServiceUnavailable,
		},
		{
			name: "timeout",
			code: ErrorCodeTimeout,
			want: http.StatusGatewayTimeout,
		},
		{
			name: "internal error",
			code: ErrorCodeInternal,
			want: http.StatusInternalServerError,
		},
		{
			name: "unknown code defaults to internal error",
			code: "UNKNOWN_CODE",
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTTPStatusFromCode(tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestGetTraceID tests extracting trace ID from gin context.
func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name         string
		setupContext func(*gin.Context)
		want         string
	}{
		{
			name: "trace ID in context",
			setupContext: func(c *gin.Context) {
				c.Set("trace_id", "context-trace-123")
			},
			want: "context-trace-123",
		},
		{
			name: "trace ID in header",
			setupContext: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-trace-456")
			},
			want: "header-trace-456",
		},
		{
			name: "trace ID in context takes precedence",
			setupContext: func(c *gin.Context) {
				c.Set("trace_id", "context-trace-123")
				c.Request.Header.Set("X-Request-ID", "header-trace-456")
			},
			want: "context-trace-123",
		},
		{
			name: "no trace ID",
			setupContext: func(c *gin.Context) {
				// No trace ID set
			},
			want: "",
		},
		{
			name: "trace ID in context but wrong type",
			setupContext: func(c *gin.Context) {
				c.Set("trace_id", 12345) // Not a string
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			tt.setupContext(c)

			got := GetTraceID(c)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestHandleError tests mapping domain errors to HTTP responses.
func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		traceID        string
		wantStatus     int
		wantCode       string
		wantMessageKey string
	}{
		{
			name:           "not found error",
			err:            domain.NewNotFoundError("quote", "7"),
			traceID:        "trace-123",
			wantStatus:     http.StatusNotFound,
			wantCode:       ErrorCodeNotFound,
			wantMessageKey: "quote",
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("id", "cannot be empty"),
			traceID:        "trace-789",
			wantStatus:     http.StatusBadRequest,
			wantCode:       ErrorCodeValidation,
			wantMessageKey: "id",
		},
		{
			name:           "unavailable error",
			err:            domain.NewUnavailableError("catalog", "not initialized"),
			traceID:        "trace-def",
			wantStatus:     http.StatusServiceUnavailable,
			wantCode:       ErrorCodeUnavailable,
			wantMessageKey: "temporarily unavailable",
		},
		{
			name:           "internal error",
			err:            errors.New("template execution failed"),
			traceID:        "trace-ghi",
			wantStatus:     http.StatusInternalServerError,
			wantCode:       ErrorCodeInternal,
			wantMessageKey: "internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set("trace_id", tt.traceID)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var response ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.Contains(t, response.Error.Message, tt.wantMessageKey)
			assert.Equal(t, tt.traceID, response.TraceID)
		})
	}
}

// TestHandleError_ValidationDetails tests that field details are included.
func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, domain.NewValidationError("id", "cannot be empty"))

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	require.NotNil(t, response.Error.Details)
	assert.Equal(t, "cannot be empty", response.Error.Details["id"])
}

// TestGetLimit tests pagination limit calculation.
func TestGetLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{
			name:  "zero returns default",
			limit: 0,
			want:  DefaultLimit,
		},
		{
			name:  "negative returns default",
			limit: -1,
			want:  DefaultLimit,
		},
		{
			name:  "valid limit",
			limit: 50,
			want:  50,
		},
		{
			name:  "over max returns max",
			limit: 150,
			want:  MaxLimit,
		},
		{
			name:  "max limit",
			limit: MaxLimit,
			want:  MaxLimit,
		},
		{
			name:  "one",
			limit: 1,
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationRequest{Limit: tt.limit}
			got := p.GetLimit()
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestPaginationRequestDecodeCursor tests cursor decoding from pagination request.
func TestPaginationRequestDecodeCursor(t *testing.T) {
	validCursor := NewCursor("3")
	validEncoded := EncodeCursor(validCursor)

	tests := []struct {
		name       string
		cursor     string
		wantCursor *CursorData
		wantErr    error
	}{
		{
			name:       "empty cursor returns ErrNoCursor",
			cursor:     "",
			wantCursor: nil,
			wantErr:    ErrNoCursor,
		},
		{
			name:       "valid cursor",
			cursor:     validEncoded,
			wantCursor: validCursor,
			wantErr:    nil,
		},
		{
			name:       "invalid cursor",
			cursor:     "invalid-base64!",
			wantCursor: nil,
			wantErr:    ErrInvalidCursor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationRequest{Cursor: tt.cursor}
			got, err := p.DecodeCursor()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCursor, got)
			}
		})
	}
}

// TestNewPaginatedResponse tests creating paginated responses.
func TestNewPaginatedResponse(t *testing.T) {
	type item struct {
		ID      string
		Content string
	}

	cursorBuilder := func(i item) *CursorData {
		return NewCursor(i.ID)
	}

	tests := []struct {
		name          string
		items         []item
		limit         int
		cursorBuilder func(item) *CursorData
		wantItemCount int
		wantHasMore   bool
		wantCursor    bool
	}{
		{
			name: "items less than limit",
			items: []item{
				{ID: "1", Content: "first"},
				{ID: "2", Content: "second"},
			},
			limit:         3,
			cursorBuilder: cursorBuilder,
			wantItemCount: 2,
			wantHasMore:   false,
			wantCursor:    false,
		},
		{
			name: "items equal to limit",
			items: []item{
				{ID: "1", Content: "first"},
				{ID: "2", Content: "second"},
				{ID: "3", Content: "third"},
			},
			limit:         3,
			cursorBuilder: cursorBuilder,
			wantItemCount: 3,
			wantHasMore:   false,
			wantCursor:    false,
		},
		{
			name: "items more than limit",
			items: []item{
				{ID: "1", Content: "first"},
				{ID: "2", Content: "second"},
				{ID: "3", Content: "third"},
				{ID: "4", Content: "fourth"},
			},
			limit:         3,
			cursorBuilder: cursorBuilder,
			wantItemCount: 3,
			wantHasMore:   true,
			wantCursor:    true,
		},
		{
			name:          "empty items",
			items:         []item{},
			limit:         3,
			cursorBuilder: cursorBuilder,
			wantItemCount: 0,
			wantHasMore:   false,
			wantCursor:    false,
		},
		{
			name: "nil cursor builder",
			items: []item{
				{ID: "1", Content: "first"},
				{ID: "2", Content: "second"},
				{ID: "3", Content: "third"},
				{ID: "4", Content: "fourth"},
			},
			limit:         3,
			cursorBuilder: nil,
			wantItemCount: 3,
			wantHasMore:   true,
			wantCursor:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPaginatedResponse(tt.items, tt.limit, tt.cursorBuilder)

			assert.Len(t, got.Items, tt.wantItemCount)
			assert.Equal(t, tt.wantHasMore, got.HasMore)

			if tt.wantCursor {
				assert.NotEmpty(t, got.NextCursor)
			} else {
				assert.Empty(t, got.NextCursor)
			}
		})
	}
}

// TestEncodeCursor tests cursor encoding.
func TestEncodeCursor(t *testing.T) {
	tests := []struct {
		name string
		data *CursorData
		want string
	}{
		{
			name: "nil cursor returns empty string",
			data: nil,
			want: "",
		},
		{
			name: "valid cursor",
			data: &CursorData{ID: "3"},
			want: func() string {
				jsonBytes, _ := json.Marshal(&CursorData{ID: "3"})
				return base64.URLEncoding.EncodeToString(jsonBytes)
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeCursor(tt.data)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDecodeCursor tests cursor decoding.
func TestDecodeCursor(t *testing.T) {
	validCursor := &CursorData{ID: "3"}
	validEncoded := EncodeCursor(validCursor)

	tests := []struct {
		name    string
		encoded string
		want    *CursorData
		wantErr error
	}{
		{
			name:    "empty string returns ErrNoCursor",
			encoded: "",
			want:    nil,
			wantErr: ErrNoCursor,
		},
		{
			name:    "valid cursor",
			encoded: validEncoded,
			want:    validCursor,
			wantErr: nil,
		},
		{
			name:    "invalid base64",
			encoded: "invalid-base64!",
			want:    nil,
			wantErr: ErrInvalidCursor,
		},
		{
			name:    "valid base64 but invalid JSON",
			encoded: base64.URLEncoding.EncodeToString([]byte("not json")),
			want:    nil,
			wantErr: ErrInvalidCursor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCursor(tt.encoded)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestNewCursor tests cursor creation.
func TestNewCursor(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want *CursorData
	}{
		{
			name: "create cursor",
			id:   "3",
			want: &CursorData{ID: "3"},
		},
		{
			name: "empty ID",
			id:   "",
			want: &CursorData{ID: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCursor(tt.id)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestEmptyPaginatedResponse tests empty response creation.
func TestEmptyPaginatedResponse(t *testing.T) {
	type item struct {
		ID string
	}

	got := EmptyPaginatedResponse[item]()

	assert.NotNil(t, got)
	assert.Empty(t, got.Items)
	assert.False(t, got.HasMore)
	assert.Empty(t, got.NextCursor)
}

// TestValidator tests validator singleton.
func TestValidator(t *testing.T) {
	v1 := Validator()
	v2 := Validator()

	assert.NotNil(t, v1)
	assert.Same(t, v1, v2) // Should be same instance (singleton)
}

// TestValidate tests struct validation.
func TestValidate(t *testing.T) {
	type testStruct struct {
		Name  string `validate:"required"`
		Limit int    `validate:"gte=0,lte=100"`
	}

	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{
			name: "valid struct",
			input: &testStruct{
				Name:  "quotes",
				Limit: 30,
			},
			wantErr: false,
		},
		{
			name: "missing required field",
			input: &testStruct{
				Name:  "",
				Limit: 30,
			},
			wantErr: true,
		},
		{
			name: "limit out of range",
			input: &testStruct{
				Name:  "quotes",
				Limit: 150,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestBindQueryAndValidate tests query binding and validation.
func TestBindQueryAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		errType error
	}{
		{
			name:    "valid query",
			query:   "?limit=10&cursor=abc",
			wantErr: false,
		},
		{
			name:    "empty query",
			query:   "",
			wantErr: false,
		},
		{
			name:    "limit out of range",
			query:   "?limit=150",
			wantErr: true,
			errType: ErrValidation,
		},
		{
			name:    "negative limit",
			query:   "?limit=-1",
			wantErr: true,
			errType: ErrValidation,
		},
		{
			name:    "non-numeric limit fails binding",
			query:   "?limit=ten",
			wantErr: true,
			errType: ErrBinding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/path"+tt.query, nil)

			var input PaginationRequest
			err := BindQueryAndValidate(c, &input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					require.ErrorIs(t, err, tt.errType)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestValidationErrors tests extracting field errors.
func TestValidationErrors(t *testing.T) {
	type testStruct struct {
		Name  string `json:"name" validate:"required"`
		Limit int    `json:"limit" validate:"gte=0,lte=100"`
	}

	tests := []struct {
		name      string
		input     *testStruct
		wantCount int
		wantKeys  []string
	}{
		{
			name: "multiple validation errors",
			input: &testStruct{
				Name:  "",
				Limit: 150,
			},
			wantCount: 2,
			wantKeys:  []string{"name", "limit"},
		},
		{
			name: "single validation error",
			input: &testStruct{
				Name:  "",
				Limit: 30,
			},
			wantCount: 1,
			wantKeys:  []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			require.Error(t, err)

			got := ValidationErrors(err)
			assert.Len(t, got, tt.wantCount)

			for _, key := range tt.wantKeys {
				assert.Contains(t, got, key)
				assert.NotEmpty(t, got[key])
			}
		})
	}

	t.Run("non-validation error returns empty map", func(t *testing.T) {
		err := errors.New("some error")
		got := ValidationErrors(err)
		assert.Empty(t, got)
	})
}

// TestIsValidationError tests validation error detection.
func TestIsValidationError(t *testing.T) {
	type testStruct struct {
		Name string `validate:"required"`
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "validation error",
			err: func() error {
				input := &testStruct{Name: ""}
				return Validate(input)
			}(),
			want: true,
		},
		{
			name: "non-validation error",
			err:  errors.New("some error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidationError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidationMessage tests validation message generation.
func TestValidationMessage(t *testing.T) {
	type testStruct struct {
		Name  string `validate:"required"`
		Count int    `validate:"min=1,max=10"`
		Mode  string `validate:"oneof=page api"`
		Text  string `validate:"min=5,max=100"`
		Age   int    `validate:"gte=0,lte=120"`
		Score int    `validate:"gt=0,lt=100"`
	}

	// Create a struct that will fail all validations
	input := &testStruct{
		Name:  "",
		Count: 20,
		Mode:  "invalid",
		Text:  "abc",
		Age:   150,
		Score: 150,
	}

	err := Validator().Struct(input)
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	// Map expected messages for each field
	expectedMessages := map[string]string{
		"name":  "this field is required",
		"count": "must be at most 10",
		"mode":  "must be one of: page api",
		"text":  "must be at least 5 characters",
		"age":   "must be less than or equal to 120",
		"score": "must be less than 100",
	}

	for _, fe := range validationErrs {
		fieldName := fe.Field()
		message := validationMessage(fe)

		expectedMsg, ok := expectedMessages[fieldName]
		if ok {
			assert.Equal(t, expectedMsg, message, "field: %s", fieldName)
		}
	}
}

// TestMinMaxMessage tests min/max message generation.
func TestMinMaxMessage(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		param string
		kind  reflect.Kind
		want  string
	}{
		{
			name:  "min for string",
			tag:   "min",
			param: "5",
			kind:  reflect.String,
			want:  "must be at least 5 characters",
		},
		{
			name:  "max for string",
			tag:   "max",
			param: "100",
			kind:  reflect.String,
			want:  "must be at most 100 characters",
		},
		{
			name:  "min for int",
			tag:   "min",
			param: "1",
			kind:  reflect.Int,
			want:  "must be at least 1",
		},
		{
			name:  "max for int",
			tag:   "max",
			param: "10",
			kind:  reflect.Int,
			want:  "must be at most 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := minMaxMessage(tt.tag, tt.param, tt.kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidationMessageUnknownTag tests fallback message for unknown tags.
func TestValidationMessageUnknownTag(t *testing.T) {
	type testStruct struct {
		Field string `validate:"customtag"`
	}

	// Register a custom validator that will fail
	v := Validator()
	_ = v.RegisterValidation("customtag", func(fl validator.FieldLevel) bool {
		return false
	})

	input := &testStruct{Field: "value"}
	err := v.Struct(input)
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	for _, fe := range validationErrs {
		msg := validationMessage(fe)
		assert.Equal(t, "failed validation: customtag", msg)
	}
}
