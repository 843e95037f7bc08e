// internal/match/handlers_test.go
package match

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// fakeService implements Service with canned responses
type fakeService struct {
	daily      *RecommendationResult
	dailyErr   error
	skipCalls  []SkipRecommendationDTO
	likeCalls  []LikeRecommendationDTO
	compat     *CompatibilityResult
	compatErr  error
	batchCalls int
}

func (s *fakeService) GetDailyRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error) {
	return s.daily, s.dailyErr
}

func (s *fakeService) RegenerateRecommendation(ctx context.Context, userID int64) (*RecommendationResult, error) {
	return s.daily, s.dailyErr
}

func (s *fakeService) SkipRecommendation(ctx context.Context, userID int64, dto *SkipRecommendationDTO) error {
	s.skipCalls = append(s.skipCalls, *dto)
	return nil
}

func (s *fakeService) LikeRecommendation(ctx context.Context, userID int64, dto *LikeRecommendationDTO) error {
	s.likeCalls = append(s.likeCalls, *dto)
	return nil
}

func (s *fakeService) GetCompatibility(ctx context.Context, userID, otherUserID int64) (*CompatibilityResult, error) {
	return s.compat, s.compatErr
}

func (s *fakeService) GenerateDailyRecommendations(ctx context.Context) error {
	s.batchCalls++
	return nil
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), "userID", int64(1))
	return req.WithContext(ctx)
}

func TestGetDailyRecommendation_Handler(t *testing.T) {
	recID := int64(7)
	svc := &fakeService{daily: &RecommendationResult{
		RecommendationID: &recID,
		MatchScore:       12.5,
		MatchPercentage:  100,
	}}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.GetDailyRecommendation(w, authedRequest("GET", "/api/v1/recommendations/daily", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var result RecommendationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(7), *result.RecommendationID)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestGetDailyRecommendation_Handler_NoCandidates(t *testing.T) {
	svc := &fakeService{dailyErr: ErrNoCandidates}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.GetDailyRecommendation(w, authedRequest("GET", "/api/v1/recommendations/daily", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Success     bool     `json:"success"`
		Error       string   `json:"error"`
		Suggestions []string `json:"suggestions"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
	assert.Len(t, body.Suggestions, 4)
}

func TestGetDailyRecommendation_Handler_UserNotFound(t *testing.T) {
	svc := &fakeService{dailyErr: ErrUserNotFound}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.GetDailyRecommendation(w, authedRequest("GET", "/api/v1/recommendations/daily", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSkipRecommendation_Handler(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc)

	body, _ := json.Marshal(SkipRecommendationDTO{SkippedUserID: 5})
	w := httptest.NewRecorder()
	h.SkipRecommendation(w, authedRequest("POST", "/api/v1/recommendations/skip", body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.skipCalls, 1)
	assert.Equal(t, int64(5), svc.skipCalls[0].SkippedUserID)
}

func TestSkipRecommendation_Handler_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"missing skipped user", `{}`},
		{"negative id", `{"skipped_user_id": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewHandler(svc)

			w := httptest.NewRecorder()
			h.SkipRecommendation(w, authedRequest("POST", "/api/v1/recommendations/skip", []byte(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, svc.skipCalls)
		})
	}
}

func TestLikeRecommendation_Handler(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc)

	body, _ := json.Marshal(LikeRecommendationDTO{RecommendedUserID: 2})
	w := httptest.NewRecorder()
	h.LikeRecommendation(w, authedRequest("POST", "/api/v1/recommendations/like", body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.likeCalls, 1)
}

func TestGetCompatibility_Handler(t *testing.T) {
	svc := &fakeService{compat: &CompatibilityResult{UserID: 2, MatchScore: 8, MatchPercentage: 80}}
	h := NewHandler(svc)

	req := authedRequest("GET", "/api/v1/recommendations/compatibility/2", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": "2"})

	w := httptest.NewRecorder()
	h.GetCompatibility(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result CompatibilityResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 80, result.MatchPercentage)
}

func TestGetCompatibility_Handler_InvalidID(t *testing.T) {
	h := NewHandler(&fakeService{})

	req := authedRequest("GET", "/api/v1/recommendations/compatibility/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": "abc"})

	w := httptest.NewRecorder()
	h.GetCompatibility(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerBatchGeneration_Handler(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.TriggerBatchGeneration(w, authedRequest("POST", "/api/v1/recommendations/generate", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.batchCalls)
}
