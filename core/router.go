package core

import (
	"embed"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed html
var assets embed.FS

const (
	errFragmentValidation = "<p>Username and password cannot be empty or contain spaces</p>"
	errFragmentMismatch   = "<p>Passwords do not match</p>"
	errFragmentLogin      = "Invalid login"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(gate *Gate) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Static assets inlined into the binary.
	r.GET("/styles.css", serveAsset("html/styles.css", "text/css; charset=utf-8"))
	r.GET("/app.js", serveAsset("html/app.js", "application/javascript; charset=utf-8"))
	r.GET("/htmx.min.js", serveAsset("html/htmx.min.js", "application/javascript; charset=utf-8"))
	r.GET("/spinner.svg", serveAsset("html/img/spinner.svg", "image/svg+xml"))

	// Protected root: the gate decides, the router redirects.
	r.GET("/", func(c *gin.Context) {
		if _, ok := gate.Check(c.Request); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		servePage(c, http.StatusOK, "html/index.html")
	})

	r.GET("/login", func(c *gin.Context) {
		if !gate.Registered() {
			c.Redirect(http.StatusSeeOther, "/login/create")
			return
		}
		servePage(c, http.StatusOK, "html/login.html")
	})

	r.POST("/login", func(c *gin.Context) {
		var form struct {
			Username string `form:"username"`
			Password string `form:"password"`
		}
		_ = c.ShouldBind(&form)

		if !gate.Registered() {
			c.Status(http.StatusUnauthorized)
			return
		}

		session, err := gate.Login(c.Request.Context(), form.Username, form.Password)
		if err != nil {
			respondAuthError(c, err)
			return
		}

		http.SetCookie(c.Writer, session.Cookie)
		c.Header("HX-Redirect", "/")
		c.Status(http.StatusOK)
	})

	r.GET("/login/create", func(c *gin.Context) {
		if gate.Registered() {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		servePage(c, http.StatusOK, "html/create_login.html")
	})

	r.POST("/login/create", func(c *gin.Context) {
		var form struct {
			Username        string `form:"username"`
			Password        string `form:"password"`
			ConfirmPassword string `form:"confirm_password"`
		}
		_ = c.ShouldBind(&form)

		if gate.Registered() {
			c.Status(http.StatusUnauthorized)
			return
		}

		session, err := gate.Register(c.Request.Context(), form.Username, form.Password, form.ConfirmPassword)
		if err != nil {
			respondAuthError(c, err)
			return
		}

		http.SetCookie(c.Writer, session.Cookie)
		c.Header("HX-Redirect", "/")
		c.Redirect(http.StatusSeeOther, "/")
	})

	r.POST("/logout", func(c *gin.Context) {
		http.SetCookie(c.Writer, gate.Logout())
		c.Header("HX-Redirect", "/login")
		c.Status(http.StatusOK)
	})

	r.NoRoute(func(c *gin.Context) {
		servePage(c, http.StatusNotFound, "html/status_codes/404.html")
	})

	return r
}

// respondAuthError maps gate errors onto the incremental-UI contract:
// recoverable rejections become 200 responses carrying a terse HTML fragment
// the page swaps in, so only infrastructure faults surface as HTTP errors.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(errFragmentValidation))
	case errors.Is(err, ErrPasswordMismatch):
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(errFragmentMismatch))
	case errors.Is(err, ErrUnauthorized):
		c.String(http.StatusOK, errFragmentLogin)
	case errors.Is(err, ErrConflict):
		c.Status(http.StatusUnauthorized)
	default:
		// Storage or key trouble: never leak detail to the client.
		log.Printf("auth operation failed: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
	}
}

func servePage(c *gin.Context, status int, name string) {
	data, err := assets.ReadFile(name)
	if err != nil {
		log.Printf("missing embedded page %s: %v", name, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", data)
}

func serveAsset(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := assets.ReadFile(name)
		if err != nil {
			log.Printf("missing embedded asset %s: %v", name, err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
