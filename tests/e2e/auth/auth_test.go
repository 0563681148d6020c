//go:build e2e

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"roombooking/internal/domain/user"
	"roombooking/internal/handler/dto/request"
	"roombooking/internal/handler/dto/response"
	"roombooking/tests/common/authtest"
	"roombooking/tests/common/dbtest"
	"roombooking/tests/common/httptest"
	"roombooking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "test@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleMember))

	_, err := s.DB.Exec(context.Background(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "New user can register",
			email:          "fresh@example.com",
			password:       "password123",
			expectedStatus: http.StatusCreated,
			description:    "valid credentials should create an account",
		},
		{
			name:           "Duplicate email is rejected",
			email:          "test@example.com",
			password:       "password123",
			expectedStatus: http.StatusConflict,
			description:    "an already registered email should conflict",
		},
		{
			name:           "Weak password is rejected",
			email:          "fresh@example.com",
			password:       "short",
			expectedStatus: http.StatusBadRequest,
			description:    "passwords shorter than 8 chars should be rejected",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.RegisterRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusCreated {
				// Registered users can log in right away
				authtest.LoginUser(t, s.Router, tt.email, tt.password)
			}
		})
	}
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "Valid credentials",
			email:          "test@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
			description:    "valid credentials should log in",
		},
		{
			name:           "Unknown user",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
			description:    "unknown users should not log in",
		},
		{
			name:           "Wrong password",
			email:          "test@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "wrong passwords should be rejected",
		},
		{
			name:           "Inactive user",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
			description:    "deactivated accounts should not log in",
		},
		{
			name:           "Empty email",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
			description:    "empty email should be rejected",
		},
		{
			name:           "Empty password",
			email:          "test@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "empty password should be rejected",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var loginRes response.LoginResponse
				err := httptest.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.AccessToken, "access token missing from body")

				accessCookie := httptest.ExtractCookie(w, "access_token")
				refreshCookie := httptest.ExtractCookie(w, "refresh_token")
				require.NotNil(t, accessCookie, "access token cookie missing")
				require.NotNil(t, refreshCookie, "refresh token cookie missing")
				require.True(t, accessCookie.HttpOnly)
				require.True(t, refreshCookie.HttpOnly)

				// last_login is stamped on successful login
				var lastLogin interface{}
				err = s.DB.QueryRow(context.Background(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_login was not updated")
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	tests := []struct {
		name              string
		setupRefreshToken func() string
		expectedStatus    int
		description       string
	}{
		{
			name: "Valid refresh token",
			setupRefreshToken: func() string {
				reqBody := request.LoginRequest{
					Email:    "test@example.com",
					Password: "password123",
				}
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, reqBody, "")
				refreshCookie := httptest.ExtractCookie(w, "refresh_token")
				require.NotNil(s.T(), refreshCookie)
				return refreshCookie.Value
			},
			expectedStatus: http.StatusOK,
			description:    "a valid refresh token should mint new tokens",
		},
		{
			name: "Garbage refresh token",
			setupRefreshToken: func() string {
				return "invalid-refresh-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "garbage refresh tokens should be rejected",
		},
		{
			name: "Empty refresh token",
			setupRefreshToken: func() string {
				return ""
			},
			expectedStatus: http.StatusBadRequest,
			description:    "empty refresh tokens should be rejected",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.RefreshRequest{
				RefreshToken: tt.setupRefreshToken(),
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var refreshRes response.RefreshResponse
				err := httptest.DecodeResponseBody(t, w.Body, &refreshRes)
				require.NoError(t, err)
				require.NotEmpty(t, refreshRes.AccessToken, "new access token missing")
			}
		})
	}
}

func (s *authSuite) TestLogout() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedStatus int
		description    string
	}{
		{
			name: "Valid token",
			setupToken: func() string {
				return authtest.LoginUser(s.T(), s.Router, "test@example.com", "password123")
			},
			expectedStatus: http.StatusNoContent,
			description:    "a valid token should log out",
		},
		{
			name: "Garbage token",
			setupToken: func() string {
				return "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "garbage tokens should be rejected",
		},
		{
			name: "No token",
			setupToken: func() string {
				return ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "missing tokens should be rejected",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := tt.setupToken()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupUser      func() (string, string, string) // email, role, token
		expectedStatus int
	}{
		{
			name: "Admin user",
			setupUser: func() (string, string, string) {
				email := "admin@example.com"
				role := string(user.RoleAdmin)
				token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, role)
				return email, role, token
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Member user",
			setupUser: func() (string, string, string) {
				email := "member2@example.com"
				role := string(user.RoleMember)
				token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, role)
				return email, role, token
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Garbage token",
			setupUser: func() (string, string, string) {
				return "", "", "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "No token",
			setupUser: func() (string, string, string) {
				return "", "", ""
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			email, role, token := tt.setupUser()
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				responseBody := w.Body.String()
				require.Contains(t, responseBody, email)
				require.Contains(t, responseBody, role)
				require.NotContains(t, responseBody, "password")
			}
		})
	}
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("Expired token is rejected", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", string(user.RoleMember))
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "expired tokens must be rejected")
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("Multiple sessions stay valid", func() {
		t := s.T()

		token1 := authtest.LoginUser(t, s.Router, "test@example.com", "password123")
		token2 := authtest.LoginUser(t, s.Router, "test@example.com", "password123")

		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token1)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token2)

		require.Equal(t, http.StatusOK, w1.Code, "first session token rejected")
		require.Equal(t, http.StatusOK, w2.Code, "second session token rejected")
	})
}
