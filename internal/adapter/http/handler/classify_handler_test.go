package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/promptclf/internal/adapter/http/middleware"
	"github.com/ressKim-io/promptclf/internal/domain/service"
	"github.com/ressKim-io/promptclf/internal/usecase"
)

// MockClassifyUsecase is a mock implementation of ClassifyUsecase
type MockClassifyUsecase struct {
	mock.Mock
}

func (m *MockClassifyUsecase) Classify(ctx context.Context, input *usecase.ClassifyInput) (*usecase.ClassifyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ClassifyOutput), args.Error(1)
}

func setupClassifyRouter(h *ClassifyHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/classify", h.Classify)
	r.POST("/api/v1/classify", h.ClassifyV1)
	return r
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// stubCompleter records every prompt and answers with a fixed completion
type stubCompleter struct {
	completion string
	err        error
	prompts    []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.completion, s.err
}

func (s *stubCompleter) Name() string { return "stub" }

var _ service.Completer = (*stubCompleter)(nil)

func TestClassify_EndToEndZeroShot(t *testing.T) {
	stub := &stubCompleter{completion: " positive\n"}
	router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

	w := postJSON(router, "/classify", `{
		"input_text": "I love this product!",
		"labels": {"positive": "Text is positive.", "negative": "Text is negative."}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label": "positive"}`, w.Body.String())
	require.Len(t, stub.prompts, 1)
	assert.Equal(t, "You are an assistant that classifies texts into the following categories:\n"+
		"- positive: Text is positive.\n"+
		"- negative: Text is negative.\n\n"+
		"Please read the following text and provide the most appropriate label.\n"+
		"Text: \"I love this product!\"\n"+
		"Label: ", stub.prompts[0])
}

func TestClassify_EndToEndFewShot(t *testing.T) {
	stub := &stubCompleter{completion: "Sports"}
	router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

	w := postJSON(router, "/classify", `{
		"input_text": "Cup final tonight",
		"labels": {"World": "", "Sports": "Sports news."},
		"examples": [
			{"text": "Stocks rally", "label": "Business"},
			{"text": "Election results", "label": "World"}
		]
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label": "Sports"}`, w.Body.String())
	require.Len(t, stub.prompts, 1)
	assert.Equal(t, "You are an assistant that classifies texts into the following categories:\n"+
		"- World: \n"+
		"- Sports: Sports news.\n\n"+
		"Here are some example texts and their corresponding labels: \n\n"+
		"Text: \"Stocks rally\"\nLabel: Business\n\n"+
		"Text: \"Election results\"\nLabel: World\n\n"+
		"Please read the following text and provide the most appropriate label.\n"+
		"Text: \"Cup final tonight\"\n"+
		"Label: ", stub.prompts[0])
}

func TestClassify_LabelOrderFollowsRequest(t *testing.T) {
	stub := &stubCompleter{completion: "b"}
	router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

	w := postJSON(router, "/classify", `{"input_text": "x", "labels": {"zeta": "z", "alpha": "a", "mid": "m"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "- zeta: z\n- alpha: a\n- mid: m\n\n")
}

func TestClassify_NullAndEmptyExamplesMatch(t *testing.T) {
	stub := &stubCompleter{completion: "a"}
	router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

	for _, body := range []string{
		`{"input_text": "x", "labels": {"a": "A"}}`,
		`{"input_text": "x", "labels": {"a": "A"}, "examples": null}`,
		`{"input_text": "x", "labels": {"a": "A"}, "examples": []}`,
	} {
		w := postJSON(router, "/classify", body)
		assert.Equal(t, http.StatusOK, w.Code, body)
	}

	require.Len(t, stub.prompts, 3)
	assert.Equal(t, stub.prompts[0], stub.prompts[1])
	assert.Equal(t, stub.prompts[0], stub.prompts[2])
	assert.NotContains(t, stub.prompts[0], "Here are some example texts")
}

func TestClassify_AcceptedEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty input text", body: `{"input_text": "", "labels": {"a": "A"}}`},
		{name: "empty label set", body: `{"input_text": "x", "labels": {}}`},
		{name: "example label outside set", body: `{"input_text": "x", "labels": {"a": "A"}, "examples": [{"text": "t", "label": "zzz"}]}`},
		{name: "empty example fields", body: `{"input_text": "x", "labels": {"a": "A"}, "examples": [{"text": "", "label": ""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{completion: "a"}
			router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

			w := postJSON(router, "/classify", tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, stub.prompts, 1)
		})
	}
}

func TestClassify_MalformedRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `input_text=x`},
		{name: "empty body", body: ``},
		{name: "missing input_text", body: `{"labels": {"a": "A"}}`},
		{name: "null input_text", body: `{"input_text": null, "labels": {"a": "A"}}`},
		{name: "numeric input_text", body: `{"input_text": 5, "labels": {"a": "A"}}`},
		{name: "missing labels", body: `{"input_text": "x"}`},
		{name: "null labels", body: `{"input_text": "x", "labels": null}`},
		{name: "labels as array", body: `{"input_text": "x", "labels": ["a", "b"]}`},
		{name: "non-string description", body: `{"input_text": "x", "labels": {"a": 1}}`},
		{name: "examples not a list", body: `{"input_text": "x", "labels": {"a": "A"}, "examples": {"text": "t"}}`},
		{name: "example missing label", body: `{"input_text": "x", "labels": {"a": "A"}, "examples": [{"text": "t"}]}`},
		{name: "example missing text", body: `{"input_text": "x", "labels": {"a": "A"}, "examples": [{"label": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{completion: "a"}
			router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

			w := postJSON(router, "/classify", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, stub.prompts)

			var response Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
			assert.NotEmpty(t, response.Error.Details)
		})
	}
}

func TestClassify_UpstreamFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("status 500: server overloaded")}
	router := setupClassifyRouter(NewClassifyHandler(usecase.NewClassifyUsecase(stub, nil)))

	w := postJSON(router, "/classify", `{"input_text": "x", "labels": {"a": "A"}}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Len(t, stub.prompts, 1)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "UPSTREAM_ERROR", response.Error.Code)
	assert.NotContains(t, w.Body.String(), "overloaded")
}

func TestClassifyV1_Envelope(t *testing.T) {
	mockUC := new(MockClassifyUsecase)
	router := setupClassifyRouter(NewClassifyHandler(mockUC))

	mockUC.On("Classify", mock.Anything, mock.MatchedBy(func(input *usecase.ClassifyInput) bool {
		return *input.InputText == "hello" && assert.ObjectsAreEqual([]string{"greeting", "other"}, input.Labels.IDs())
	})).Return(&usecase.ClassifyOutput{Label: "greeting"}, nil)

	req, _ := http.NewRequest("POST", "/api/v1/classify",
		bytes.NewBufferString(`{"input_text": "hello", "labels": {"greeting": "", "other": ""}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, map[string]interface{}{"label": "greeting"}, response.Data)
	assert.Equal(t, "req-42", response.Meta.RequestID)
	mockUC.AssertExpectations(t)
}

func TestClassifyV1_UsecaseErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "completion failed", err: fmt.Errorf("%w: stub: timeout", usecase.ErrCompletionFailed), expectedCode: http.StatusBadGateway},
		{name: "invalid request", err: usecase.ErrInvalidRequest, expectedCode: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("boom"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := new(MockClassifyUsecase)
			router := setupClassifyRouter(NewClassifyHandler(mockUC))
			mockUC.On("Classify", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postJSON(router, "/api/v1/classify", `{"input_text": "x", "labels": {"a": "A"}}`)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
