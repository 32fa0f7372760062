package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	group *DomainGroup
}

func (s *stubRegistrar) Routes() *DomainGroup { return s.group }

func TestRegisterMountsRoutesUnderPrefix(t *testing.T) {
	engine := gin.New()
	r := New(engine, "/api/v1", zap.NewNop())

	group := NewDomainGroup("catalog", "/products").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
		GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
		POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.Register(&stubRegistrar{group: group})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "list", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil))
	assert.Equal(t, "abc", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterMultipleGroups(t *testing.T) {
	engine := gin.New()
	r := New(engine, "/api/v1", nil)

	catalog := NewDomainGroup("catalog", "/products").
		GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	sales := NewDomainGroup("sales", "/sales").
		GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(&stubRegistrar{group: catalog}, &stubRegistrar{group: sales})

	for _, path := range []string{"/api/v1/products", "/api/v1/sales"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestDomainGroupName(t *testing.T) {
	g := NewDomainGroup("inventory", "/inventory")
	assert.Equal(t, "inventory", g.Name())
}
