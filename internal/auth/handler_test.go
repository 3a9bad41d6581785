package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/personal-finance/internal/auth"
	"github.com/frahmantamala/personal-finance/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// guardService implements auth.ServiceAPI with real token validation; the
// middleware only ever calls ValidateAccessToken.
type guardService struct {
	tokenGen auth.TokenGeneratorAPI
}

func (s *guardService) Register(auth.RegisterDTO) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (s *guardService) Authenticate(auth.LoginDTO) (*auth.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *guardService) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

var _ = Describe("AuthMiddleware", func() {
	var (
		tokenGen *auth.JWTTokenGenerator
		guarded  http.Handler
		invoked  bool
		identity *auth.Identity
	)

	BeforeEach(func() {
		tokenGen = auth.NewJWTTokenGenerator("test-secret", time.Hour)
		handler := auth.NewHandler(&guardService{tokenGen: tokenGen})

		invoked = false
		identity = nil
		guarded = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			invoked = true
			identity, _ = auth.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
	})

	It("should reject a request without an Authorization header before the handler runs", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("no token provided, authorization denied"))
		Expect(invoked).To(BeFalse())
	})

	It("should reject a non-Bearer scheme", func() {
		token, err := tokenGen.GenerateToken(42)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Basic "+token)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(invoked).To(BeFalse())
	})

	It("should treat the scheme as case sensitive", func() {
		token, err := tokenGen.GenerateToken(42)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "bearer "+token)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(invoked).To(BeFalse())
	})

	It("should reject an expired token before the handler runs", func() {
		expiredGen := &auth.JWTTokenGenerator{
			Secret:   []byte("test-secret"),
			TokenTTL: -time.Hour,
		}
		token, err := expiredGen.GenerateToken(42)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("invalid or expired token"))
		Expect(invoked).To(BeFalse())
	})

	It("should reject a malformed token", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(invoked).To(BeFalse())
	})

	It("should invoke the handler with the decoded identity for a valid token", func() {
		token, err := tokenGen.GenerateToken(42)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		guarded.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(invoked).To(BeTrue())
		Expect(identity).NotTo(BeNil())
		Expect(identity.UserID).To(Equal(int64(42)))
	})
})
