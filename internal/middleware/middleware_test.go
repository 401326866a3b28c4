package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func clientRouter(clients *service.ClientService) *gin.Engine {
	r := gin.New()
	r.Use(ClientIdentity(clients, false, zerolog.Nop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetClientID(c))
	})
	return r
}

func TestClientIdentityIssuesCookie(t *testing.T) {
	clients := service.NewClientService("secret", time.Hour)
	r := clientRouter(clients)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookieName {
		t.Fatalf("cookies = %v, want one %s cookie", cookies, ClientCookieName)
	}
	if !cookies[0].HttpOnly {
		t.Error("client cookie must be HttpOnly")
	}
	id, err := clients.Validate(cookies[0].Value)
	if err != nil {
		t.Fatalf("issued cookie does not validate: %v", err)
	}
	if w.Body.String() != id {
		t.Fatalf("handler saw client %q, cookie carries %q", w.Body.String(), id)
	}
}

func TestClientIdentityReusesValidCookie(t *testing.T) {
	clients := service.NewClientService("secret", time.Hour)
	id, token, _ := clients.Issue()
	r := clientRouter(clients)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != id {
		t.Fatalf("client id = %q, want %q", w.Body.String(), id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("valid cookie should not be reissued")
	}
}

func TestClientIdentityReplacesForgedCookie(t *testing.T) {
	forger := service.NewClientService("attacker", time.Hour)
	forgedID, forged, _ := forger.Issue()
	r := clientRouter(service.NewClientService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() == forgedID {
		t.Fatal("forged client id accepted")
	}
	if len(w.Result().Cookies()) != 1 {
		t.Fatal("forged cookie should be replaced")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()
	now := time.Now()
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := do(); code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", code)
	}

	now = now.Add(time.Minute)
	if code := do(); code != http.StatusNoContent {
		t.Fatalf("after refill: status %d", code)
	}
}

func TestRateLimiterCustomHandler(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	r := gin.New()
	r.POST("/", rl.MiddlewareWith(func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/?notice=RATE_LIMIT_EXCEEDED")
		c.Abort()
	}), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusSeeOther {
		t.Fatalf("statuses = %v, want [204 303]", codes)
	}
}

func brotliRouter(body string) *gin.Engine {
	r := gin.New()
	r.Use(Brotli())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, body) })
	return r
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	body := strings.Repeat("Алматы ", 500)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
	w := httptest.NewRecorder()
	brotliRouter(body).ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "br" {
		t.Fatalf("Content-Encoding = %q, want br", got)
	}
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(plain) != body {
		t.Fatal("decoded body differs")
	}
}

func TestBrotliPassesThroughSmallOrUnaccepted(t *testing.T) {
	cases := map[string]struct {
		body   string
		accept string
	}{
		"small body":   {"ok", "br"},
		"not accepted": {strings.Repeat("x", 4096), "gzip"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tc.accept)
			w := httptest.NewRecorder()
			brotliRouter(tc.body).ServeHTTP(w, req)

			if w.Header().Get("Content-Encoding") != "" {
				t.Fatal("response should not be compressed")
			}
			if w.Body.String() != tc.body {
				t.Fatal("body altered")
			}
		})
	}
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.GET("/", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
}
