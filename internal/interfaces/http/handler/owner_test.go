package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditapp "github.com/propertyops/backend/internal/application/audit"
	portfolioapp "github.com/propertyops/backend/internal/application/portfolio"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
	"github.com/propertyops/backend/internal/infrastructure/persistence"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
	"github.com/propertyops/backend/internal/interfaces/http/dto"
)

type ownerTestEnv struct {
	router       *gin.Engine
	ownerRepo    *persistence.GormOwnerRepository
	propertyRepo *persistence.GormPropertyRepository
}

func newOwnerTestEnv(t *testing.T) *ownerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.OwnerModel{},
		&models.PropertyModel{},
		&models.ActivityLogModel{},
	))

	ownerRepo := persistence.NewGormOwnerRepository(db)
	propertyRepo := persistence.NewGormPropertyRepository(db)
	logRepo := persistence.NewGormActivityLogRepository(db)
	recorder := auditapp.NewRecorder(logRepo, shared.SystemClock{}, zap.NewNop())
	svc := portfolioapp.NewOwnerService(ownerRepo, propertyRepo, recorder)
	h := NewOwnerHandler(svc)

	router := gin.New()
	router.POST("/owners", h.Create)
	router.GET("/owners", h.List)
	router.GET("/owners/:id", h.Get)
	router.DELETE("/owners/:id", h.Delete)

	return &ownerTestEnv{router: router, ownerRepo: ownerRepo, propertyRepo: propertyRepo}
}

func (e *ownerTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestOwnerHandlerCreateAndGet(t *testing.T) {
	env := newOwnerTestEnv(t)

	w := env.do(t, http.MethodPost, "/owners", map[string]any{
		"name":          "Maple Street Holdings LLC",
		"contact_email": "ops@maplestreet.example",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Success)

	payload, err := json.Marshal(created.Data)
	require.NoError(t, err)
	var owner portfolioapp.OwnerResponse
	require.NoError(t, json.Unmarshal(payload, &owner))
	assert.Equal(t, "Maple Street Holdings LLC", owner.Name)

	w = env.do(t, http.MethodGet, "/owners/"+owner.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnerHandlerCreateValidation(t *testing.T) {
	env := newOwnerTestEnv(t)

	w := env.do(t, http.MethodPost, "/owners", map[string]any{
		"contact_email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestOwnerHandlerGetNotFound(t *testing.T) {
	env := newOwnerTestEnv(t)

	w := env.do(t, http.MethodGet, "/owners/2f5a1f7e-4bb1-4f29-bb43-0a9f6a1c2d3e", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnerHandlerGetBadID(t *testing.T) {
	env := newOwnerTestEnv(t)

	w := env.do(t, http.MethodGet, "/owners/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerHandlerDeleteBlockedByProperties(t *testing.T) {
	env := newOwnerTestEnv(t)
	ctx := context.Background()

	owner, err := portfolio.NewOwner("Held Owner", nil)
	require.NoError(t, err)
	require.NoError(t, env.ownerRepo.Save(ctx, owner))

	addr := valueobject.MustNewAddress("12 Elm St", "Cleveland", "OH", "44101")
	property, err := portfolio.NewProperty(owner.ID, addr, portfolio.PropertyStatusVacant, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.propertyRepo.Save(ctx, property))

	w := env.do(t, http.MethodDelete, "/owners/"+owner.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
}

func TestOwnerHandlerListPagination(t *testing.T) {
	env := newOwnerTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha LLC", "Beta LLC", "Gamma LLC"} {
		owner, err := portfolio.NewOwner(name, nil)
		require.NoError(t, err)
		require.NoError(t, env.ownerRepo.Save(ctx, owner))
	}

	w := env.do(t, http.MethodGet, "/owners?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.PageSize)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
