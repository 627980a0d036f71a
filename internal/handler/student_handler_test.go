package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/tpo-api/internal/middleware"
	"github.com/campusops/tpo-api/internal/models"
	"github.com/campusops/tpo-api/internal/service"
	"github.com/campusops/tpo-api/pkg/export"
)

type offerRepoMock struct {
	offer      *models.OfferLetter
	respondErr error
	detail     *models.OfferLetterDetail
	detailErr  error
}

func (m *offerRepoMock) Respond(ctx context.Context, offerID, studentProfileID string, status models.OfferStatus, respondedAt time.Time) (*models.OfferLetter, error) {
	return m.offer, m.respondErr
}

func (m *offerRepoMock) FindDetailOwned(ctx context.Context, offerID, studentProfileID string) (*models.OfferLetterDetail, error) {
	return m.detail, m.detailErr
}

type offerRendererMock struct {
	out []byte
}

func (m *offerRendererMock) RenderOfferLetter(letter export.OfferLetter) ([]byte, error) {
	return m.out, nil
}

func newOfferTestHandler(repo *offerRepoMock, renderer *offerRendererMock) *StudentHandler {
	offers := service.NewOfferService(repo, renderer, &auditRecorderMock{}, nil)
	return NewStudentHandler(nil, offers)
}

func studentTestContext(t *testing.T, w *httptest.ResponseRecorder, method, target string, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, target, nil)
	} else {
		req, _ = http.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{ProfileID: "sp1", Role: models.RoleStudent})
	return c
}

func TestStudentHandlerRespondOfferMissingStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newOfferTestHandler(&offerRepoMock{}, &offerRendererMock{})

	w := httptest.NewRecorder()
	c := studentTestContext(t, w, http.MethodPatch, "/students/offers/o1", `{}`)
	c.Params = gin.Params{{Key: "id", Value: "o1"}}

	handler.RespondOffer(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerRespondOfferNotOwned(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newOfferTestHandler(&offerRepoMock{respondErr: sql.ErrNoRows}, &offerRendererMock{})

	w := httptest.NewRecorder()
	c := studentTestContext(t, w, http.MethodPatch, "/students/offers/o1", `{"offer_status":"Accepted"}`)
	c.Params = gin.Params{{Key: "id", Value: "o1"}}

	handler.RespondOffer(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlerRespondOfferSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &offerRepoMock{offer: &models.OfferLetter{ID: "o1", OfferStatus: models.OfferDeclined}}
	handler := newOfferTestHandler(repo, &offerRendererMock{})

	w := httptest.NewRecorder()
	c := studentTestContext(t, w, http.MethodPatch, "/students/offers/o1", `{"offer_status":"Declined"}`)
	c.Params = gin.Params{{Key: "id", Value: "o1"}}

	handler.RespondOffer(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"offer_status":"Declined"`)
}

func TestStudentHandlerOfferLetterStreamsPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &offerRepoMock{detail: &models.OfferLetterDetail{
		OfferLetter: models.OfferLetter{ID: "o1", Position: "SDE I", CTC: "12 LPA"},
		StudentName: "Asha Verma",
		RollNumber:  "CS021",
		CompanyName: "Acme",
	}}
	handler := newOfferTestHandler(repo, &offerRendererMock{out: []byte("%PDF-1.4")})

	w := httptest.NewRecorder()
	c := studentTestContext(t, w, http.MethodGet, "/students/offers/o1/letter", "")
	c.Params = gin.Params{{Key: "id", Value: "o1"}}

	handler.OfferLetter(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "offer-o1.pdf")
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}
