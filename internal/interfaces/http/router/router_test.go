package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouterSetup_RootMount(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(NewDomainGroup("cart", "/cart").GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "cart")
	}))
	r.Setup()

	w := get(engine, "/cart")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart", w.Body.String())
}

func TestRouterSetup_WithBasePath(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithBasePath("/market/"))
	assert.Equal(t, "/market", r.basePath)

	r.Register(NewDomainGroup("public", "").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	r.Setup()

	assert.Equal(t, http.StatusOK, get(engine, "/market/ping").Code)
	assert.Equal(t, http.StatusNotFound, get(engine, "/ping").Code)
}

func TestDomainGroup_MiddlewareScopedToGroup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	guarded := NewDomainGroup("member", "").
		Use(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }).
		GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })
	open := NewDomainGroup("public", "").
		GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.Register(guarded).Register(open)
	r.Setup()

	assert.Equal(t, http.StatusUnauthorized, get(engine, "/me").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/").Code)
}

func TestDomainGroup_Subgroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	product := NewDomainGroup("product", "/product")
	product.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "show "+c.Param("id")) })
	product.Group("delete", "/:id").POST("/delete", func(c *gin.Context) {
		c.String(http.StatusOK, "delete "+c.Param("id"))
	})

	r.Register(product)
	r.Setup()

	assert.Equal(t, "show 7", get(engine, "/product/7").Body.String())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/product/7/delete", nil))
	assert.Equal(t, "delete 7", w.Body.String())
	assert.Equal(t, "product", product.Name())
}
