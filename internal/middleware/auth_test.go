package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": email})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runVerify(t *testing.T, authorization string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/book-order/user@example.com", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}

	VerifyToken(testSecret)(c)

	email := ""
	reached := false
	if v, ok := c.Get(EmailKey); ok {
		email, _ = v.(string)
		reached = !c.IsAborted()
	}
	return w, email, reached
}

func TestVerifyTokenMissingHeader(t *testing.T) {
	w, _, _ := runVerify(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"message":"unauthorized user"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestVerifyTokenInvalidFormat(t *testing.T) {
	w, _, _ := runVerify(t, "Token abc")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"message":"Unauthorized access"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestVerifyTokenBadSignature(t *testing.T) {
	token := signedToken(t, "other-secret", "user@example.com")
	w, _, _ := runVerify(t, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestVerifyTokenMissingEmailClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "123"})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w, _, _ := runVerify(t, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestVerifyTokenValid(t *testing.T) {
	token := signedToken(t, testSecret, "user@example.com")
	w, email, reached := runVerify(t, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !reached {
		t.Fatal("expected request to pass the gate")
	}
	if email != "user@example.com" {
		t.Fatalf("expected decoded email in context, got %q", email)
	}
}
